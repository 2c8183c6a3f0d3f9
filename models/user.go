package models

import (
	"time"
)

const (
	UserTypeParent = "parent"
	UserTypeChild  = "child"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"userId"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	UserType     string    `gorm:"size:16;not null" json:"userType"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName,omitempty"`
	Age          int       `json:"age,omitempty"`
	PointsTotal  int       `gorm:"not null;default:0" json:"pointsTotal"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Household struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// HouseholdMember links a user (parent or child) to a household.
type HouseholdMember struct {
	ID          uint   `gorm:"primaryKey"`
	HouseholdID uint   `gorm:"uniqueIndex:idx_household_user;not null"`
	UserID      uint   `gorm:"uniqueIndex:idx_household_user;index;not null"`
	Role        string `gorm:"size:16;not null"`
	CreatedAt   time.Time
}
