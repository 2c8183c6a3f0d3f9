package models

import "time"

type Achievement struct {
	ID            uint   `gorm:"primaryKey" json:"achievementId"`
	Code          string `gorm:"size:64;uniqueIndex;not null" json:"achievementCode"`
	Name          string `gorm:"size:128;not null" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	PointsAwarded int    `json:"pointsAwarded"`
	IconURL       string `json:"iconUrl"`
}

type ChildAchievement struct {
	ID            uint      `gorm:"primaryKey"`
	ChildUserID   uint      `gorm:"uniqueIndex:idx_child_achievement;not null"`
	AchievementID uint      `gorm:"uniqueIndex:idx_child_achievement;not null"`
	EarnedAt      time.Time `gorm:"autoCreateTime"`
}
