package services

import (
	"context"
	"fmt"
	"strings"

	"nutrakids/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultDailyCalories = 1800

type ChildService struct {
	db *gorm.DB
}

func NewChildService(db *gorm.DB) *ChildService {
	return &ChildService{db: db}
}

type CreateChildRequest struct {
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Allergies []string `json:"allergies"`
	Goals     []string `json:"goals"`
	Calories  int      `json:"calories"`
}

// Child is the API view of a child user joined with its profile.
type Child struct {
	UserID             uint     `json:"userId"`
	FirstName          string   `json:"firstName"`
	Age                int      `json:"age"`
	PointsTotal        int      `json:"pointsTotal"`
	DailyCalorieTarget int      `json:"dailyCalorieTarget"`
	Allergies          []string `json:"allergies"`
	HealthGoals        []string `json:"healthGoals"`
}

func (s *ChildService) Create(ctx context.Context, parentID uint, in CreateChildRequest) (*Child, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Age <= 0 {
		return nil, fmt.Errorf("%w: name and age required", ErrBadRequest)
	}
	calories := in.Calories
	if calories <= 0 {
		calories = defaultDailyCalories
	}
	allergies := nonNil(in.Allergies)
	goals := nonNil(in.Goals)

	householdID, err := householdOf(ctx, s.db, parentID)
	if err != nil {
		return nil, fmt.Errorf("parent household: %w", err)
	}

	child := &models.User{
		// children never log in; the address only satisfies the unique index
		Email:        "child_" + uuid.NewString() + "@internal",
		PasswordHash: "!",
		UserType:     models.UserTypeChild,
		FirstName:    name,
		Age:          in.Age,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(child).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.ChildProfile{
			ChildUserID:        child.ID,
			HouseholdID:        householdID,
			DailyCalorieTarget: calories,
			Allergies:          allergies,
			HealthGoals:        goals,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.HouseholdMember{
			HouseholdID: householdID,
			UserID:      child.ID,
			Role:        models.UserTypeChild,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &Child{
		UserID:             child.ID,
		FirstName:          child.FirstName,
		Age:                child.Age,
		DailyCalorieTarget: calories,
		Allergies:          allergies,
		HealthGoals:        goals,
	}, nil
}

// List returns the children in the parent's household.
func (s *ChildService) List(ctx context.Context, parentID uint) ([]Child, error) {
	householdID, err := householdOf(ctx, s.db, parentID)
	if err != nil {
		return nil, err
	}

	var profiles []models.ChildProfile
	if err := s.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("child_user_id").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []Child{}, nil
	}

	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ChildUserID)
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]Child, 0, len(profiles))
	for _, p := range profiles {
		u := byID[p.ChildUserID]
		out = append(out, Child{
			UserID:             p.ChildUserID,
			FirstName:          u.FirstName,
			Age:                u.Age,
			PointsTotal:        u.PointsTotal,
			DailyCalorieTarget: p.DailyCalorieTarget,
			Allergies:          nonNil(p.Allergies),
			HealthGoals:        nonNil(p.HealthGoals),
		})
	}
	return out, nil
}

// HouseholdOf returns the household a parent manages.
func (s *ChildService) HouseholdOf(ctx context.Context, parentID uint) (uint, error) {
	return householdOf(ctx, s.db, parentID)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
