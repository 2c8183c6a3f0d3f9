package services

import (
	"context"
	"errors"

	"nutrakids/models"

	"gorm.io/gorm"
)

// householdOf returns the first household the user belongs to.
func householdOf(ctx context.Context, db *gorm.DB, userID uint) (uint, error) {
	var m models.HouseholdMember
	err := db.WithContext(ctx).Where("user_id = ?", userID).Order("id").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return m.HouseholdID, nil
}

// childOfParent loads a child's profile if the parent shares its household.
func childOfParent(ctx context.Context, db *gorm.DB, parentID, childID uint) (*models.ChildProfile, error) {
	var p models.ChildProfile
	err := db.WithContext(ctx).
		Table("child_profiles").
		Joins("JOIN household_members hm ON hm.household_id = child_profiles.household_id").
		Where("child_profiles.child_user_id = ? AND hm.user_id = ?", childID, parentID).
		Select("child_profiles.*").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
