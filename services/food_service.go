package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nutrakids/models"
)

// FoodService groups the dictionary operations the API exposes: suggestions,
// photo recognition and the administrative dictionary reads and writes.
type FoodService struct {
	dict    *GormFoodDictionary
	suggest *SuggestionService
	rek     LabelDetector
}

// NewFoodService wires the service; rek may be nil when AWS is not configured.
func NewFoodService(dict *GormFoodDictionary, suggest *SuggestionService, rek LabelDetector) *FoodService {
	return &FoodService{dict: dict, suggest: suggest, rek: rek}
}

func (s *FoodService) Suggest(ctx context.Context, foodName string) (*Suggestion, error) {
	return s.suggest.Suggest(ctx, foodName)
}

// Recognize detects labels in a photo and suggests a food for the most
// confident label. Malformed images are ErrBadRequest; provider failures are
// ErrRecognitionUnavailable.
func (s *FoodService) Recognize(ctx context.Context, base64Img string) (*Suggestion, error) {
	if s.rek == nil {
		return nil, fmt.Errorf("%w: image recognition", ErrNotConfigured)
	}
	labels, err := s.rek.RecognizeLabels(ctx, base64Img)
	if errors.Is(err, ErrBadRequest) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecognitionUnavailable, err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no labels detected", ErrBadRequest)
	}
	return s.suggest.Suggest(ctx, labels[0])
}

// AddDictionaryFood is the administrative "add food" path.
func (s *FoodService) AddDictionaryFood(ctx context.Context, name, emoji, category string, alternates []string) (*models.FoodEntry, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(emoji) == "" || strings.TrimSpace(category) == "" {
		return nil, fmt.Errorf("%w: food name, emoji, and category required", ErrBadRequest)
	}
	return s.dict.Insert(ctx, name, emoji, NormalizeCategory(category), append(alternates, name))
}

func (s *FoodService) DictionaryByCategory(ctx context.Context, category string) ([]models.FoodEntry, error) {
	if strings.TrimSpace(category) == "" {
		return s.dict.ListAll(ctx)
	}
	return s.dict.ListByCategory(ctx, category)
}

func (s *FoodService) Categories(ctx context.Context) ([]string, error) {
	return s.dict.Categories(ctx)
}
