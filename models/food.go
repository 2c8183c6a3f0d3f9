package models

import (
	"strings"
	"time"
)

// FoodEntry is a canonical record in the shared food dictionary.
// NameKey carries the unique index so case-insensitive uniqueness is enforced
// by the database on every driver.
type FoodEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	NameKey        string    `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Emoji          string    `gorm:"size:32" json:"emoji"`
	Category       string    `gorm:"size:64;index" json:"category"`
	AlternateNames string    `gorm:"type:text" json:"-"` // comma-joined, lowercased
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (FoodEntry) TableName() string { return "foods_master" }

// FoodNameKey is the normalized form used for uniqueness and matching.
func FoodNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Alternates splits the stored alternate-name column.
func (f FoodEntry) Alternates() []string {
	if strings.TrimSpace(f.AlternateNames) == "" {
		return nil
	}
	parts := strings.Split(f.AlternateNames, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinAlternates lowercases, trims and de-duplicates names into the stored
// comma-joined form.
func JoinAlternates(names []string) string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = FoodNameKey(strings.ReplaceAll(n, ",", " "))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return strings.Join(out, ",")
}

// HouseholdFood is a food on one household's own list.
type HouseholdFood struct {
	ID          uint      `gorm:"primaryKey" json:"foodId"`
	HouseholdID uint      `gorm:"index;not null" json:"householdId"`
	Name        string    `gorm:"size:255;not null" json:"foodName"`
	Emoji       string    `gorm:"size:32" json:"emoji"`
	Category    string    `gorm:"size:64" json:"category"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (HouseholdFood) TableName() string { return "foods" }

// FoodPreference is a child's 1-5 rating of a household food.
type FoodPreference struct {
	ID          uint `gorm:"primaryKey"`
	ChildUserID uint `gorm:"index;not null"`
	FoodID      uint `gorm:"index;not null"`
	Rating      int  `gorm:"not null"`
	CreatedAt   time.Time
}
