package services

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"nutrakids/config"
	"nutrakids/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a migrated, seeded sqlite database private to the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "nutrakids.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sf, err := config.LoadSeed("")
	require.NoError(t, err)
	_, err = config.Seed(db, sf)
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// newEmptyDB is newTestDB without the food seed.
func newEmptyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.InitDB(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "nutrakids.db"),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// memDict is an in-memory FoodDictionary that counts calls.
type memDict struct {
	mu      sync.Mutex
	foods   []models.FoodEntry
	calls   map[string]int
	listErr error
	failAll error
}

func newMemDict(foods ...models.FoodEntry) *memDict {
	d := &memDict{calls: map[string]int{}}
	for _, f := range foods {
		d.add(f)
	}
	return d
}

func (d *memDict) add(f models.FoodEntry) models.FoodEntry {
	f.ID = uint(len(d.foods) + 1)
	f.NameKey = models.FoodNameKey(f.Name)
	d.foods = append(d.foods, f)
	return f
}

func (d *memDict) count(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[op]
}

func (d *memDict) FindExact(_ context.Context, name string) (*models.FoodEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["exact"]++
	if d.failAll != nil {
		return nil, d.failAll
	}
	for _, f := range d.foods {
		if f.NameKey == models.FoodNameKey(name) {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (d *memDict) FindByAlternate(_ context.Context, text string) (*models.FoodEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["alternate"]++
	if d.failAll != nil {
		return nil, d.failAll
	}
	needle := models.FoodNameKey(text)
	for _, f := range d.foods {
		if needle != "" && strings.Contains(strings.ToLower(f.AlternateNames), needle) {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (d *memDict) ListAll(_ context.Context) ([]models.FoodEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["list"]++
	if d.failAll != nil {
		return nil, d.failAll
	}
	if d.listErr != nil {
		return nil, d.listErr
	}
	return append([]models.FoodEntry(nil), d.foods...), nil
}

func (d *memDict) Insert(_ context.Context, name, emoji, category string, alternates []string) (*models.FoodEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls["insert"]++
	for _, f := range d.foods {
		if f.NameKey == models.FoodNameKey(name) {
			return nil, ErrDuplicateFood
		}
	}
	f := d.add(models.FoodEntry{
		Name:           name,
		Emoji:          emoji,
		Category:       category,
		AlternateNames: models.JoinAlternates(alternates),
	})
	return &f, nil
}
