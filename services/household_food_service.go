package services

import (
	"context"
	"fmt"
	"strings"

	"nutrakids/models"

	"gorm.io/gorm"
)

// HouseholdFoodService manages the per-household food list children pick from.
type HouseholdFoodService struct {
	db *gorm.DB
}

func NewHouseholdFoodService(db *gorm.DB) *HouseholdFoodService {
	return &HouseholdFoodService{db: db}
}

func (s *HouseholdFoodService) List(ctx context.Context, parentID uint) ([]models.HouseholdFood, error) {
	householdID, err := householdOf(ctx, s.db, parentID)
	if err != nil {
		return nil, err
	}
	foods := []models.HouseholdFood{}
	err = s.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("category, name").
		Find(&foods).Error
	return foods, err
}

func (s *HouseholdFoodService) Add(ctx context.Context, parentID uint, name, emoji, category string) (*models.HouseholdFood, error) {
	name = strings.TrimSpace(name)
	emoji = strings.TrimSpace(emoji)
	category = strings.TrimSpace(category)
	if name == "" || emoji == "" || category == "" {
		return nil, fmt.Errorf("%w: food name, emoji, and category required", ErrBadRequest)
	}
	householdID, err := householdOf(ctx, s.db, parentID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.HouseholdFood{}).
		Where("household_id = ? AND LOWER(name) = ?", householdID, strings.ToLower(name)).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: this food is already in your household", ErrDuplicateFood)
	}

	f := &models.HouseholdFood{
		HouseholdID: householdID,
		Name:        name,
		Emoji:       emoji,
		Category:    category,
		IsActive:    true,
	}
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes a food, but only from the caller's own household.
func (s *HouseholdFoodService) Delete(ctx context.Context, parentID, foodID uint) error {
	householdID, err := householdOf(ctx, s.db, parentID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND household_id = ?", foodID, householdID).Delete(&models.HouseholdFood{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrForbidden
		}
		return tx.Where("food_id = ?", foodID).Delete(&models.FoodPreference{}).Error
	})
}
