package models

import (
	"time"
)

// DailyTracking is the per-child, per-day hydration row.
type DailyTracking struct {
	ID           uint      `gorm:"primaryKey"`
	ChildUserID  uint      `gorm:"uniqueIndex:idx_tracking_child_date;not null"`
	TrackingDate time.Time `gorm:"uniqueIndex:idx_tracking_child_date;not null"` // truncate to local midnight
	WaterIntake  int       `gorm:"not null;default:0"`                           // cups
	DailyPoints  int       `gorm:"not null;default:0"`
}
