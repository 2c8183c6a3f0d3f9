package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"nutrakids/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClassifier struct {
	mu    sync.Mutex
	calls int
	out   *Classification
	err   error
}

func (f *fakeClassifier) Classify(_ context.Context, _ string) (*Classification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := *f.out
	return &out, nil
}

func (f *fakeClassifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func kiwi() *Classification {
	return &Classification{CorrectedName: "Kiwi Fruit", Emoji: "🥝", Category: "Fruits", Confidence: "high"}
}

func TestSuggest_RejectsShortInput(t *testing.T) {
	cl := &fakeClassifier{out: kiwi()}
	s := NewSuggestionService(newMemDict(), cl)

	for _, in := range []string{"", "  ", "x"} {
		_, err := s.Suggest(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
	assert.Zero(t, cl.count())
}

func TestSuggest_LocalHitSkipsClassifier(t *testing.T) {
	cl := &fakeClassifier{err: errors.New("must not be called")}
	s := NewSuggestionService(newMemDict(
		models.FoodEntry{Name: "Strawberry", Emoji: "🍓", Category: "Fruits", AlternateNames: "strawberrys"},
	), cl)
	ctx := context.Background()

	tests := []struct {
		in         string
		confidence string
	}{
		{"strawberry", ConfidenceHigh},
		{"strawberrys", ConfidenceHigh},
		{"stroberry", ConfidenceMedium},
	}
	for _, tt := range tests {
		got, err := s.Suggest(ctx, tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, &Suggestion{
			CorrectedName: "Strawberry",
			Emoji:         "🍓",
			Category:      "Fruits",
			Confidence:    tt.confidence,
			Source:        SourceLocal,
		}, got, tt.in)
	}
	assert.Zero(t, cl.count())
}

func TestSuggest_ClassifiesAndCachesMiss(t *testing.T) {
	dict := newMemDict()
	cl := &fakeClassifier{out: kiwi()}
	s := NewSuggestionService(dict, cl)
	ctx := context.Background()

	first, err := s.Suggest(ctx, "kiwi frut")
	require.NoError(t, err)
	assert.Equal(t, SourceExternal, first.Source)
	assert.Equal(t, "Kiwi Fruit", first.CorrectedName)
	assert.Equal(t, "high", first.Confidence)
	assert.Equal(t, 1, dict.count("insert"))

	second, err := s.Suggest(ctx, "kiwi frut")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, second.Source)
	assert.Equal(t, "Kiwi Fruit", second.CorrectedName)
	assert.Equal(t, "🥝", second.Emoji)
	assert.Equal(t, 1, cl.count())
}

func TestSuggest_NormalizesUnknownCategory(t *testing.T) {
	dict := newMemDict()
	cl := &fakeClassifier{out: &Classification{CorrectedName: "Mochi", Emoji: "🍡", Category: "Desserts", Confidence: "low"}}
	s := NewSuggestionService(dict, cl)

	got, err := s.Suggest(context.Background(), "mochi")
	require.NoError(t, err)
	assert.Equal(t, "Other", got.Category)
	assert.Equal(t, ConfidenceLow, got.Confidence)

	stored, err := dict.FindExact(context.Background(), "Mochi")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Other", stored.Category)
}

func TestSuggest_DuplicateWriteBackIsSwallowed(t *testing.T) {
	// The classifier corrects to a name that already exists under a spelling
	// no local tier can reach.
	dict := newMemDict(models.FoodEntry{Name: "Kiwi Fruit", Emoji: "🥝", Category: "Fruits"})
	cl := &fakeClassifier{out: kiwi()}
	s := NewSuggestionService(dict, cl)

	got, err := s.Suggest(context.Background(), "chinese gooseberry")
	require.NoError(t, err)
	assert.Equal(t, SourceExternal, got.Source)
	assert.Equal(t, 1, dict.count("insert"))
}

func TestSuggest_ClassifierFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"parse", ErrClassifierParse, ErrClassifierParse},
		{"unavailable", ErrClassifierUnavailable, ErrClassifierUnavailable},
		{"untyped", errors.New("boom"), ErrClassifierUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dict := newMemDict()
			s := NewSuggestionService(dict, &fakeClassifier{err: tt.err})

			got, err := s.Suggest(context.Background(), "dragon fruit")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, dict.count("insert"))
		})
	}
}

func TestSuggest_StoreErrorIsNotClassified(t *testing.T) {
	dict := newMemDict()
	dict.failAll = errors.New("db down")
	cl := &fakeClassifier{out: kiwi()}
	s := NewSuggestionService(dict, cl)

	_, err := s.Suggest(context.Background(), "kiwi")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, cl.count())
}

func TestSuggest_ConcurrentMissesInsertOnce(t *testing.T) {
	db := newEmptyDB(t)
	dict := NewGormFoodDictionary(db)
	s := NewSuggestionService(dict, &fakeClassifier{out: kiwi()})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Suggest(context.Background(), "kiwi frut")
			if assert.NoError(t, err) {
				assert.Equal(t, "Kiwi Fruit", got.CorrectedName)
			}
		}()
	}
	wg.Wait()

	var n int64
	require.NoError(t, db.Model(&models.FoodEntry{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSuggest_MalformedClassifierReplyLeavesStoreUntouched(t *testing.T) {
	db := newTestDB(t)
	dict := NewGormFoodDictionary(db)
	srv := claudeServer(t, http.StatusOK, textReply(`{"correctedName": "Xyzzy", "emoji": `))
	s := NewSuggestionService(dict, NewClaudeClassifier(NewClaudeClient("test-key", srv.URL, "test-model", 5*time.Second)))

	var before int64
	require.NoError(t, db.Model(&models.FoodEntry{}).Count(&before).Error)

	got, err := s.Suggest(context.Background(), "xyzzyfoodnotreal")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrClassifierParse)

	var after int64
	require.NoError(t, db.Model(&models.FoodEntry{}).Count(&after).Error)
	assert.Equal(t, before, after)
}
