package models

import "time"

// ChildProfile holds per-child settings; the child itself is a User row.
type ChildProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"profileId"`
	ChildUserID        uint      `gorm:"uniqueIndex;not null" json:"childUserId"`
	HouseholdID        uint      `gorm:"index;not null" json:"householdId"`
	DailyCalorieTarget int       `gorm:"not null;default:1800" json:"dailyCalorieTarget"`
	Allergies          []string  `gorm:"type:text;serializer:json" json:"allergies"`
	HealthGoals        []string  `gorm:"type:text;serializer:json" json:"healthGoals"`
	CreatedAt          time.Time `json:"createdAt"`
}
