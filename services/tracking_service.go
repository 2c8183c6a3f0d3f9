package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutrakids/models"
	"nutrakids/utils"

	"gorm.io/gorm"
)

const (
	basePointsPerFood  = 10
	goodRatingBonus    = 10
	newFoodBonus       = 20
	goodRatingMin      = 4
	pointsPerWaterCup  = 5
	WaterGoalCups      = 8
	maxCupsPerLog      = 20
	recentMealsLimit   = 30
	bonusNewFood       = "First time trying this food!"
	bonusGoodRating    = "Great rating!"
	bonusHydrationHero = "Hydration Hero! +20 bonus!"
)

// TrackingService logs what children eat and drink and keeps their points.
type TrackingService struct {
	db           *gorm.DB
	achievements *AchievementService
	notify       HouseholdNotifier
	now          func() time.Time
}

func NewTrackingService(db *gorm.DB, achievements *AchievementService, notify HouseholdNotifier) *TrackingService {
	return &TrackingService{db: db, achievements: achievements, notify: notify, now: time.Now}
}

type LogFoodRequest struct {
	MealType   string `json:"mealType"`
	FoodName   string `json:"foodName"`
	MealRating int    `json:"mealRating"`
}

type LogFoodResult struct {
	PointsEarned int      `json:"pointsEarned"`
	IsNewFood    bool     `json:"isNewFood"`
	BonusReason  string   `json:"bonusReason"`
	Achievements []string `json:"achievements"`
}

// FoodPoints is the score for one logged food.
func FoodPoints(rating int, isNewFood bool) int {
	points := basePointsPerFood
	if rating >= goodRatingMin {
		points += goodRatingBonus
	}
	if isNewFood {
		points += newFoodBonus
	}
	return points
}

func (s *TrackingService) LogFood(ctx context.Context, parentID, childID uint, in LogFoodRequest) (*LogFoodResult, error) {
	name := strings.TrimSpace(in.FoodName)
	mealType := strings.TrimSpace(in.MealType)
	if name == "" || mealType == "" || in.MealRating == 0 {
		return nil, fmt.Errorf("%w: missing required fields", ErrBadRequest)
	}
	if in.MealRating < 1 || in.MealRating > 5 {
		return nil, fmt.Errorf("%w: meal rating must be 1-5", ErrBadRequest)
	}
	profile, err := childOfParent(ctx, s.db, parentID, childID)
	if err != nil {
		return nil, err
	}

	var (
		result = &LogFoodResult{Achievements: []string{}}
		earned []models.Achievement
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loggedBefore, sameFood int64
		if err := tx.Model(&models.LoggedMeal{}).
			Where("child_user_id = ?", childID).
			Count(&loggedBefore).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.LoggedMeal{}).
			Where("child_user_id = ? AND LOWER(meal_name) = ?", childID, strings.ToLower(name)).
			Count(&sameFood).Error; err != nil {
			return err
		}

		result.IsNewFood = sameFood == 0
		result.PointsEarned = FoodPoints(in.MealRating, result.IsNewFood)
		switch {
		case result.IsNewFood:
			result.BonusReason = bonusNewFood
		case in.MealRating >= goodRatingMin:
			result.BonusReason = bonusGoodRating
		}

		if err := tx.Create(&models.LoggedMeal{
			ChildUserID:  childID,
			HouseholdID:  profile.HouseholdID,
			MealDate:     utils.DayStartLocal(s.now()),
			MealType:     mealType,
			MealName:     name,
			MealRating:   in.MealRating,
			PointsEarned: result.PointsEarned,
		}).Error; err != nil {
			return err
		}

		var codes []string
		if loggedBefore == 0 {
			codes = append(codes, AchievementFirstBite)
		}
		if result.IsNewFood {
			var distinct int64
			if err := tx.Raw(
				"SELECT COUNT(DISTINCT LOWER(meal_name)) FROM logged_meals WHERE child_user_id = ?", childID,
			).Scan(&distinct).Error; err != nil {
				return err
			}
			if distinct >= adventurousEaterFoods {
				codes = append(codes, AchievementAdventurousEater)
			}
		}

		bonus, err := s.award(ctx, tx, childID, codes, &earned)
		if err != nil {
			return err
		}
		return addPoints(tx, childID, result.PointsEarned+bonus)
	})
	if err != nil {
		return nil, err
	}

	for _, a := range earned {
		result.Achievements = append(result.Achievements, a.Code)
	}
	emit(s.notify, profile.HouseholdID, childID, EventPointsEarned, map[string]any{
		"food":   name,
		"points": result.PointsEarned,
	})
	s.achievements.Announce(profile.HouseholdID, childID, earned)
	return result, nil
}

func (s *TrackingService) ListMeals(ctx context.Context, parentID, childID uint) ([]models.LoggedMeal, error) {
	if _, err := childOfParent(ctx, s.db, parentID, childID); err != nil {
		return nil, err
	}
	meals := []models.LoggedMeal{}
	err := s.db.WithContext(ctx).
		Where("child_user_id = ?", childID).
		Order("meal_date DESC, logged_at DESC, id DESC").
		Limit(recentMealsLimit).
		Find(&meals).Error
	return meals, err
}

type LogWaterResult struct {
	PointsEarned int    `json:"pointsEarned"`
	WaterToday   int    `json:"waterToday"`
	Goal         int    `json:"goal"`
	Bonus        string `json:"bonus"`
}

func (s *TrackingService) LogWater(ctx context.Context, parentID, childID uint, cups int) (*LogWaterResult, error) {
	if cups == 0 {
		cups = 1
	}
	if cups < 0 || cups > maxCupsPerLog {
		return nil, fmt.Errorf("%w: cups must be between 1 and %d", ErrBadRequest, maxCupsPerLog)
	}
	profile, err := childOfParent(ctx, s.db, parentID, childID)
	if err != nil {
		return nil, err
	}

	points := pointsPerWaterCup * cups
	today := utils.DayStartLocal(s.now())
	result := &LogWaterResult{PointsEarned: points, Goal: WaterGoalCups}
	var earned []models.Achievement

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.DailyTracking{ChildUserID: childID, TrackingDate: today}
		if err := tx.Where("child_user_id = ? AND tracking_date = ?", childID, today).
			FirstOrCreate(&row).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DailyTracking{}).
			Where("id = ?", row.ID).
			UpdateColumns(map[string]any{
				"water_intake": gorm.Expr("water_intake + ?", cups),
				"daily_points": gorm.Expr("daily_points + ?", points),
			}).Error; err != nil {
			return err
		}
		if err := tx.First(&row, row.ID).Error; err != nil {
			return err
		}
		result.WaterToday = row.WaterIntake

		var codes []string
		if result.WaterToday >= WaterGoalCups {
			result.Bonus = bonusHydrationHero
			codes = append(codes, AchievementHydrationHero)
		}
		bonus, err := s.award(ctx, tx, childID, codes, &earned)
		if err != nil {
			return err
		}
		return addPoints(tx, childID, points+bonus)
	})
	if err != nil {
		return nil, err
	}

	emit(s.notify, profile.HouseholdID, childID, EventPointsEarned, map[string]any{
		"water":  cups,
		"points": points,
	})
	s.achievements.Announce(profile.HouseholdID, childID, earned)
	return result, nil
}

type DailyPoints struct {
	TotalPoints int `json:"totalPoints"`
	TodayPoints int `json:"todayPoints"`
	MealsLogged int `json:"mealsLogged"`
	WaterIntake int `json:"waterIntake"`
	WaterGoal   int `json:"waterGoal"`
}

func (s *TrackingService) DailyPoints(ctx context.Context, parentID, childID uint) (*DailyPoints, error) {
	if _, err := childOfParent(ctx, s.db, parentID, childID); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	today := utils.DayStartLocal(s.now())

	var child models.User
	if err := db.First(&child, childID).Error; err != nil {
		return nil, err
	}

	var meals struct {
		MealsCount  int
		TodayPoints int
	}
	if err := db.Model(&models.LoggedMeal{}).
		Where("child_user_id = ? AND meal_date = ?", childID, today).
		Select("COUNT(*) AS meals_count, COALESCE(SUM(points_earned), 0) AS today_points").
		Scan(&meals).Error; err != nil {
		return nil, err
	}

	var water models.DailyTracking
	err := db.Where("child_user_id = ? AND tracking_date = ?", childID, today).First(&water).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &DailyPoints{
		TotalPoints: child.PointsTotal,
		TodayPoints: meals.TodayPoints + water.WaterIntake*pointsPerWaterCup,
		MealsLogged: meals.MealsCount,
		WaterIntake: water.WaterIntake,
		WaterGoal:   WaterGoalCups,
	}, nil
}

// award grants each code once and returns the bonus points they carry.
func (s *TrackingService) award(ctx context.Context, tx *gorm.DB, childID uint, codes []string, earned *[]models.Achievement) (int, error) {
	bonus := 0
	for _, code := range codes {
		a, err := s.achievements.Award(ctx, tx, childID, code)
		if err != nil {
			return 0, err
		}
		if a != nil {
			*earned = append(*earned, *a)
			bonus += a.PointsAwarded
		}
	}
	return bonus, nil
}

func addPoints(tx *gorm.DB, childID uint, points int) error {
	return tx.Model(&models.User{}).
		Where("id = ?", childID).
		UpdateColumn("points_total", gorm.Expr("points_total + ?", points)).Error
}
