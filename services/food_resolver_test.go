package services

import (
	"context"
	"errors"
	"testing"

	"nutrakids/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodResolver_ShortInputNeverTouchesStore(t *testing.T) {
	dict := newMemDict()
	dict.failAll = errors.New("store must not be called")
	r := NewFoodResolver(dict)

	for _, in := range []string{"", " ", "a", "  b  ", "é"} {
		hit, err := r.Resolve(context.Background(), in, DefaultTolerance)
		assert.NoError(t, err, in)
		assert.Nil(t, hit, in)
	}
	assert.Zero(t, dict.count("exact"))
	assert.Zero(t, dict.count("alternate"))
	assert.Zero(t, dict.count("list"))
}

func TestFoodResolver_ExactWinsOverAlternate(t *testing.T) {
	dict := newMemDict(
		models.FoodEntry{Name: "Peanut", AlternateNames: "peanuts,pea nut"},
		models.FoodEntry{Name: "Pea"},
	)
	r := NewFoodResolver(dict)

	hit, err := r.Resolve(context.Background(), "PEA", DefaultTolerance)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Pea", hit.Entry.Name)
	assert.Equal(t, TierExact, hit.Tier)
	assert.Zero(t, dict.count("alternate"))
	assert.Zero(t, dict.count("list"))
}

func TestFoodResolver_AlternateBeforeFuzzy(t *testing.T) {
	dict := newMemDict(models.FoodEntry{Name: "Strawberry", AlternateNames: "strawberrys,strawberries"})
	r := NewFoodResolver(dict)

	hit, err := r.Resolve(context.Background(), "strawberrys", DefaultTolerance)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Strawberry", hit.Entry.Name)
	assert.Equal(t, TierAlternate, hit.Tier)
	assert.Zero(t, dict.count("list"))
}

func TestFoodResolver_FuzzyTypos(t *testing.T) {
	dict := newMemDict(
		models.FoodEntry{Name: "Strawberry", AlternateNames: "strawberrys"},
		models.FoodEntry{Name: "Broccoli"},
		models.FoodEntry{Name: "Banana"},
	)
	r := NewFoodResolver(dict)

	tests := []struct {
		in       string
		want     string
		distance int
	}{
		{"stroberry", "Strawberry", 2},
		{"brocoli", "Broccoli", 1},
		{"broccolli", "Broccoli", 1},
		{"banxnx", "Banana", 2},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hit, err := r.Resolve(context.Background(), tt.in, DefaultTolerance)
			require.NoError(t, err)
			require.NotNil(t, hit)
			assert.Equal(t, tt.want, hit.Entry.Name)
			assert.Equal(t, TierFuzzy, hit.Tier)
			assert.Equal(t, tt.distance, hit.Distance)
		})
	}
}

func TestFoodResolver_FuzzyBoundary(t *testing.T) {
	r := NewFoodResolver(newMemDict(models.FoodEntry{Name: "Banana"}))
	ctx := context.Background()

	hit, err := r.Resolve(ctx, "bxnxnx", DefaultTolerance)
	require.NoError(t, err)
	assert.Nil(t, hit, "three edits is past the tolerance")

	hit, err = r.Resolve(ctx, "banxnx", 0)
	require.NoError(t, err)
	assert.Nil(t, hit)

	hit, err = r.Resolve(ctx, "banana", -1)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, TierExact, hit.Tier)
}

func TestFoodResolver_FuzzyTieGoesToLowestID(t *testing.T) {
	r := NewFoodResolver(newMemDict(
		models.FoodEntry{Name: "Pear"},
		models.FoodEntry{Name: "Peas"},
	))

	hit, err := r.Resolve(context.Background(), "pea", DefaultTolerance)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Pear", hit.Entry.Name)
	assert.EqualValues(t, 1, hit.Entry.ID)
	assert.Equal(t, 1, hit.Distance)
}

func TestFoodResolver_StoreErrorPropagates(t *testing.T) {
	dict := newMemDict(models.FoodEntry{Name: "Apple"})
	dict.listErr = errors.New("connection reset")
	r := NewFoodResolver(dict)

	hit, err := r.Resolve(context.Background(), "zzzz", DefaultTolerance)
	assert.Nil(t, hit)
	assert.EqualError(t, err, "connection reset")
}

func TestFoodResolver_SeededDictionary(t *testing.T) {
	r := NewFoodResolver(NewGormFoodDictionary(newTestDB(t)))
	ctx := context.Background()

	hit, err := r.Resolve(ctx, "Stroberry", DefaultTolerance)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Strawberry", hit.Entry.Name)
	assert.Equal(t, TierFuzzy, hit.Tier)

	hit, err = r.Resolve(ctx, "brocolli", DefaultTolerance)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, "Broccoli", hit.Entry.Name)
	assert.Equal(t, TierAlternate, hit.Tier)

	hit, err = r.Resolve(ctx, "quinoa", DefaultTolerance)
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestClosestFoodsSortsByDistance(t *testing.T) {
	foods := []models.FoodEntry{
		{ID: 1, Name: "Cart"},
		{ID: 2, Name: "Carrot"},
		{ID: 3, Name: "Carrots"},
	}
	got := closestFoods("carrot", foods, 2)
	require.Len(t, got, 3)
	assert.Equal(t, "Carrot", got[0].Entry.Name)
	assert.Equal(t, 0, got[0].Distance)
	assert.Equal(t, "Carrots", got[1].Entry.Name)
	assert.Equal(t, "Cart", got[2].Entry.Name)
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"Stroberry", "strawberry", 2},
		{"  Apple ", "apple", 0},
		{"crème", "creme", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EditDistance(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
