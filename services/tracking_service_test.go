package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"nutrakids/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	householdID uint
	event       HouseholdEvent
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) BroadcastHousehold(householdID uint, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{householdID: householdID, event: payload.(HouseholdEvent)})
}

func (n *recordingNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, e := range n.events {
		out = append(out, e.event.Kind)
	}
	return out
}

type family struct {
	db       *gorm.DB
	parentID uint
	childID  uint
}

// newFamily registers a parent with one child.
func newFamily(t *testing.T) family {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()

	auth := NewAuthService(db, "test-secret", time.Hour, 8)
	parent, _, err := auth.RegisterParent(ctx, SignupRequest{
		FirstName: "Dana",
		LastName:  "Rivera",
		Email:     "dana@example.com",
		Password:  "correct-horse",
	})
	require.NoError(t, err)

	child, err := NewChildService(db).Create(ctx, parent.ID, CreateChildRequest{Name: "Mia", Age: 7})
	require.NoError(t, err)
	return family{db: db, parentID: parent.ID, childID: child.UserID}
}

func newTracking(f family, n HouseholdNotifier) *TrackingService {
	return NewTrackingService(f.db, NewAchievementService(f.db, n), n)
}

func pointsOf(t *testing.T, db *gorm.DB, userID uint) int {
	t.Helper()
	var u models.User
	require.NoError(t, db.First(&u, userID).Error)
	return u.PointsTotal
}

func TestFoodPoints(t *testing.T) {
	assert.Equal(t, 10, FoodPoints(3, false))
	assert.Equal(t, 20, FoodPoints(4, false))
	assert.Equal(t, 30, FoodPoints(1, true))
	assert.Equal(t, 40, FoodPoints(5, true))
}

func TestTracking_LogFood(t *testing.T) {
	f := newFamily(t)
	n := &recordingNotifier{}
	svc := newTracking(f, n)
	ctx := context.Background()

	first, err := svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{MealType: "Lunch", FoodName: "Carrot", MealRating: 5})
	require.NoError(t, err)
	assert.True(t, first.IsNewFood)
	assert.Equal(t, 40, first.PointsEarned)
	assert.Equal(t, bonusNewFood, first.BonusReason)
	assert.Equal(t, []string{AchievementFirstBite}, first.Achievements)

	again, err := svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{MealType: "Dinner", FoodName: "carrot", MealRating: 4})
	require.NoError(t, err)
	assert.False(t, again.IsNewFood)
	assert.Equal(t, 20, again.PointsEarned)
	assert.Equal(t, bonusGoodRating, again.BonusReason)
	assert.Empty(t, again.Achievements)

	// meal points plus the first_bite award
	assert.Equal(t, 40+20+10, pointsOf(t, f.db, f.childID))
	assert.Equal(t, []string{EventPointsEarned, EventAchievementEarned, EventPointsEarned}, n.kinds())

	meals, err := svc.ListMeals(ctx, f.parentID, f.childID)
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "carrot", meals[0].MealName)
}

func TestTracking_LogFoodValidation(t *testing.T) {
	f := newFamily(t)
	svc := newTracking(f, nil)
	ctx := context.Background()

	_, err := svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{MealType: "Lunch", FoodName: "Carrot", MealRating: 6})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{FoodName: "Carrot", MealRating: 3})
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.LogFood(ctx, f.parentID+1000, f.childID, LogFoodRequest{MealType: "Lunch", FoodName: "Carrot", MealRating: 3})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestTracking_AdventurousEater(t *testing.T) {
	f := newFamily(t)
	svc := newTracking(f, nil)
	ctx := context.Background()

	foods := []string{"Apple", "Banana", "Carrot", "Corn", "Egg", "Milk", "Rice", "Bread", "Pasta"}
	for _, name := range foods {
		res, err := svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{MealType: "Snack", FoodName: name, MealRating: 3})
		require.NoError(t, err)
		assert.NotContains(t, res.Achievements, AchievementAdventurousEater)
	}

	res, err := svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{MealType: "Snack", FoodName: "Pizza", MealRating: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{AchievementAdventurousEater}, res.Achievements)

	earned, err := NewAchievementService(f.db, nil).List(ctx, f.parentID, f.childID)
	require.NoError(t, err)
	assert.Len(t, earned, 2)
}

func TestTracking_LogWater(t *testing.T) {
	f := newFamily(t)
	svc := newTracking(f, nil)
	ctx := context.Background()

	res, err := svc.LogWater(ctx, f.parentID, f.childID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.WaterToday)
	assert.Equal(t, 5, res.PointsEarned)
	assert.Empty(t, res.Bonus)

	res, err = svc.LogWater(ctx, f.parentID, f.childID, 7)
	require.NoError(t, err)
	assert.Equal(t, 8, res.WaterToday)
	assert.Equal(t, WaterGoalCups, res.Goal)
	assert.Equal(t, bonusHydrationHero, res.Bonus)

	// hydration_hero is only awarded once
	_, err = svc.LogWater(ctx, f.parentID, f.childID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5+35+20+5, pointsOf(t, f.db, f.childID))

	_, err = svc.LogWater(ctx, f.parentID, f.childID, -2)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestTracking_DailyPoints(t *testing.T) {
	f := newFamily(t)
	svc := newTracking(f, nil)
	ctx := context.Background()

	_, err := svc.LogFood(ctx, f.parentID, f.childID, LogFoodRequest{MealType: "Breakfast", FoodName: "Yogurt", MealRating: 2})
	require.NoError(t, err)
	_, err = svc.LogWater(ctx, f.parentID, f.childID, 2)
	require.NoError(t, err)

	pts, err := svc.DailyPoints(ctx, f.parentID, f.childID)
	require.NoError(t, err)
	assert.Equal(t, &DailyPoints{
		TotalPoints: 30 + 10 + 10,
		TodayPoints: 30 + 10,
		MealsLogged: 1,
		WaterIntake: 2,
		WaterGoal:   WaterGoalCups,
	}, pts)
}
