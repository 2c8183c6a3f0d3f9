package services

import (
	"context"
	"errors"
	"time"

	"nutrakids/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	AchievementFirstBite        = "first_bite"
	AchievementAdventurousEater = "adventurous_eater"
	AchievementHydrationHero    = "hydration_hero"

	adventurousEaterFoods  = 10
	defaultAchievementIcon = "🏆"
)

type AchievementService struct {
	db     *gorm.DB
	notify HouseholdNotifier
}

func NewAchievementService(db *gorm.DB, notify HouseholdNotifier) *AchievementService {
	return &AchievementService{db: db, notify: notify}
}

type EarnedAchievement struct {
	AchievementID   uint      `json:"achievementId"`
	AchievementCode string    `json:"achievementCode"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PointsAwarded   int       `json:"pointsAwarded"`
	IconURL         string    `json:"iconUrl"`
	Emoji           string    `json:"emoji"`
	EarnedAt        time.Time `json:"earnedAt"`
}

func (s *AchievementService) List(ctx context.Context, parentID, childID uint) ([]EarnedAchievement, error) {
	if _, err := childOfParent(ctx, s.db, parentID, childID); err != nil {
		return nil, err
	}
	out := []EarnedAchievement{}
	err := s.db.WithContext(ctx).
		Table("achievements a").
		Joins("JOIN child_achievements ca ON a.id = ca.achievement_id AND ca.child_user_id = ?", childID).
		Select("a.id AS achievement_id, a.code AS achievement_code, a.name, a.description, a.points_awarded, a.icon_url, ca.earned_at").
		Order("ca.earned_at DESC, a.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].IconURL == "" {
			out[i].IconURL = defaultAchievementIcon
		}
		out[i].Emoji = out[i].IconURL
	}
	return out, nil
}

// Award grants an achievement once inside tx and returns it when this call
// granted it. Unknown codes are ignored.
func (s *AchievementService) Award(ctx context.Context, tx *gorm.DB, childID uint, code string) (*models.Achievement, error) {
	var a models.Achievement
	err := tx.WithContext(ctx).Where("code = ?", code).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := tx.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ChildAchievement{ChildUserID: childID, AchievementID: a.ID})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &a, nil
}

// Announce pushes freshly earned achievements to the household.
func (s *AchievementService) Announce(householdID, childID uint, earned []models.Achievement) {
	for _, a := range earned {
		emit(s.notify, householdID, childID, EventAchievementEarned, map[string]any{
			"code":   a.Code,
			"name":   a.Name,
			"points": a.PointsAwarded,
		})
	}
}
