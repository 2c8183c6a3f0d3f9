package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nutrakids/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FoodDictionary is the shared table of canonical foods used by the resolver.
// Lookups return nil, nil on a miss.
type FoodDictionary interface {
	FindExact(ctx context.Context, name string) (*models.FoodEntry, error)
	FindByAlternate(ctx context.Context, text string) (*models.FoodEntry, error)
	ListAll(ctx context.Context) ([]models.FoodEntry, error)
	Insert(ctx context.Context, name, emoji, category string, alternates []string) (*models.FoodEntry, error)
}

type GormFoodDictionary struct {
	db *gorm.DB
}

func NewGormFoodDictionary(db *gorm.DB) *GormFoodDictionary {
	return &GormFoodDictionary{db: db}
}

func (d *GormFoodDictionary) FindExact(ctx context.Context, name string) (*models.FoodEntry, error) {
	var f models.FoodEntry
	err := d.db.WithContext(ctx).
		Where("name_key = ?", models.FoodNameKey(name)).
		Order("id").
		First(&f).Error
	return foundOrNil(&f, err)
}

func (d *GormFoodDictionary) FindByAlternate(ctx context.Context, text string) (*models.FoodEntry, error) {
	needle := models.FoodNameKey(text)
	if needle == "" {
		return nil, nil
	}
	var f models.FoodEntry
	err := d.db.WithContext(ctx).
		Where(`LOWER(alternate_names) LIKE ? ESCAPE '\'`, "%"+escapeLike(needle)+"%").
		Order("id").
		First(&f).Error
	return foundOrNil(&f, err)
}

func (d *GormFoodDictionary) ListAll(ctx context.Context) ([]models.FoodEntry, error) {
	var out []models.FoodEntry
	if err := d.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return out, nil
}

// Insert adds a new canonical food. The existence check catches the common
// case; the unique index on name_key catches concurrent inserts.
func (d *GormFoodDictionary) Insert(ctx context.Context, name, emoji, category string, alternates []string) (*models.FoodEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: food name is required", ErrBadRequest)
	}
	existing, err := d.FindExact(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateFood, existing.Name)
	}

	f := &models.FoodEntry{
		Name:           name,
		NameKey:        models.FoodNameKey(name),
		Emoji:          strings.TrimSpace(emoji),
		Category:       strings.TrimSpace(category),
		AlternateNames: models.JoinAlternates(alternates),
	}
	if err := d.db.WithContext(ctx).Create(f).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFood, name)
		}
		return nil, fmt.Errorf("insert food: %w", err)
	}
	return f, nil
}

func (d *GormFoodDictionary) ListByCategory(ctx context.Context, category string) ([]models.FoodEntry, error) {
	var out []models.FoodEntry
	err := d.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("name").
		Find(&out).Error
	return out, err
}

func (d *GormFoodDictionary) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := d.db.WithContext(ctx).
		Model(&models.FoodEntry{}).
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	return out, err
}

func foundOrNil(f *models.FoodEntry, err error) (*models.FoodEntry, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("food lookup: %w", err)
	}
	return f, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// isUniqueViolation recognises a unique index rejection from either driver.
// InitDB enables TranslateError, so its handles report gorm.ErrDuplicatedKey;
// the pgconn and string checks cover a *gorm.DB opened without translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
