package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const (
	mealPlanMaxTokens = 2000
	likedRatingMin    = 4
	dislikedRatingMax = 2
)

// MealPlan is a generated weekly plan for one child.
type MealPlan struct {
	ChildID uint   `json:"childId"`
	Plan    string `json:"mealPlan"`
}

// MealPlanService asks Claude for a weekly plan built around a child's tastes.
type MealPlanService struct {
	db     *gorm.DB
	prefs  *PreferenceService
	claude *ClaudeClient
}

func NewMealPlanService(db *gorm.DB, prefs *PreferenceService, claude *ClaudeClient) *MealPlanService {
	return &MealPlanService{db: db, prefs: prefs, claude: claude}
}

func (s *MealPlanService) Generate(ctx context.Context, parentID, childID uint) (*MealPlan, error) {
	profile, err := childOfParent(ctx, s.db, parentID, childID)
	if err != nil {
		return nil, err
	}
	prefs, err := s.prefs.forChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("db error fetching preferences: %w", err)
	}

	var liked, disliked []string
	for _, p := range prefs {
		switch {
		case p.Rating >= likedRatingMin:
			liked = append(liked, p.FoodName)
		case p.Rating <= dislikedRatingMax:
			disliked = append(disliked, p.FoodName)
		}
	}

	text, err := s.claude.Complete(ctx, mealPlanPrompt(profile.DailyCalorieTarget, profile.HealthGoals, profile.Allergies, liked, disliked), mealPlanMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMealPlanUnavailable, err)
	}
	return &MealPlan{ChildID: childID, Plan: strings.TrimSpace(text)}, nil
}

func mealPlanPrompt(calories int, goals, allergies, liked, disliked []string) string {
	var sb bytes.Buffer
	sb.WriteString("Create a 7-day meal plan for a child.\n\n")
	fmt.Fprintf(&sb, "Daily calorie target: %d\n", calories)
	fmt.Fprintf(&sb, "Health goals: %s\n", listOrNone(goals))
	fmt.Fprintf(&sb, "Allergies (never include): %s\n", listOrNone(allergies))
	fmt.Fprintf(&sb, "Foods they like: %s\n", listOrNone(liked))
	fmt.Fprintf(&sb, "Foods they dislike (avoid): %s\n", listOrNone(disliked))
	sb.WriteString("\nFor each day list breakfast, lunch, dinner and one snack. ")
	sb.WriteString("Favor the liked foods, keep portions kid-sized and add a short fun tip per day.")
	return sb.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
