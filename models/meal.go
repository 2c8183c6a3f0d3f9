package models

import (
	"time"
)

// LoggedMeal is one food a child logged, with the points it earned.
type LoggedMeal struct {
	ID           uint      `gorm:"primaryKey" json:"loggedMealId"`
	ChildUserID  uint      `gorm:"index:idx_child_date;not null" json:"childUserId"`
	HouseholdID  uint      `gorm:"index;not null" json:"householdId"`
	MealDate     time.Time `gorm:"index:idx_child_date;not null" json:"mealDate"` // local midnight
	MealType     string    `gorm:"size:32;not null" json:"mealType"`               // "Breakfast"|"Lunch"|…
	MealName     string    `gorm:"size:255;not null" json:"mealName"`
	MealRating   int       `json:"mealRating"`
	PointsEarned int       `gorm:"not null;default:0" json:"pointsEarned"`
	LoggedAt     time.Time `gorm:"autoCreateTime" json:"loggedAt"`
}
