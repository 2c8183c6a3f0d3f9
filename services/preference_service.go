package services

import (
	"context"
	"fmt"
	"sort"

	"nutrakids/models"

	"gorm.io/gorm"
)

type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Preference is a rating joined with the food it rates.
type Preference struct {
	PreferenceID uint   `json:"preferenceId"`
	FoodID       uint   `json:"foodId"`
	FoodName     string `json:"foodName"`
	Emoji        string `json:"emoji"`
	Category     string `json:"category"`
	Rating       int    `json:"rating"`
}

// Replace swaps the child's preferences for the given foodID→rating map.
func (s *PreferenceService) Replace(ctx context.Context, parentID, childID uint, ratings map[uint]int) (int, error) {
	if len(ratings) == 0 {
		return 0, fmt.Errorf("%w: child ID and preferences required", ErrBadRequest)
	}
	for id, r := range ratings {
		if r < 1 || r > 5 {
			return 0, fmt.Errorf("%w: rating for food %d must be 1-5", ErrBadRequest, id)
		}
	}
	profile, err := childOfParent(ctx, s.db, parentID, childID)
	if err != nil {
		return 0, err
	}

	foodIDs := make([]uint, 0, len(ratings))
	for id := range ratings {
		foodIDs = append(foodIDs, id)
	}
	sort.Slice(foodIDs, func(i, j int) bool { return foodIDs[i] < foodIDs[j] })

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned int64
		if err := tx.Model(&models.HouseholdFood{}).
			Where("id IN ? AND household_id = ?", foodIDs, profile.HouseholdID).
			Count(&owned).Error; err != nil {
			return err
		}
		if int(owned) != len(foodIDs) {
			return fmt.Errorf("%w: unknown food in preferences", ErrBadRequest)
		}
		if err := tx.Where("child_user_id = ?", childID).Delete(&models.FoodPreference{}).Error; err != nil {
			return err
		}
		rows := make([]models.FoodPreference, 0, len(foodIDs))
		for _, id := range foodIDs {
			rows = append(rows, models.FoodPreference{ChildUserID: childID, FoodID: id, Rating: ratings[id]})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return 0, err
	}
	return len(foodIDs), nil
}

func (s *PreferenceService) List(ctx context.Context, parentID, childID uint) ([]Preference, error) {
	if _, err := childOfParent(ctx, s.db, parentID, childID); err != nil {
		return nil, err
	}
	return s.forChild(ctx, childID)
}

func (s *PreferenceService) forChild(ctx context.Context, childID uint) ([]Preference, error) {
	out := []Preference{}
	err := s.db.WithContext(ctx).
		Table("food_preferences fp").
		Joins("JOIN foods f ON fp.food_id = f.id").
		Where("fp.child_user_id = ?", childID).
		Select("fp.id AS preference_id, fp.food_id, f.name AS food_name, f.emoji, f.category, fp.rating").
		Order("f.category, f.name").
		Scan(&out).Error
	return out, err
}
