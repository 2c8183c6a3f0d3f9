package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"nutrakids/utils"

	"github.com/charmbracelet/log"
)

const (
	SourceLocal    = "local_database"
	SourceExternal = "claude_api"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Suggestion is a usable (name, emoji, category) triple for a typed food name.
type Suggestion struct {
	CorrectedName string `json:"correctedName"`
	Emoji         string `json:"emoji"`
	Category      string `json:"category"`
	Confidence    string `json:"confidence"`
	Source        string `json:"source"`
}

// SuggestionService resolves food names locally first and only pays for the
// classifier on a miss, writing its answer back into the dictionary.
type SuggestionService struct {
	dict       FoodDictionary
	resolver   *FoodResolver
	classifier Classifier
	log        *log.Logger
}

func NewSuggestionService(dict FoodDictionary, classifier Classifier) *SuggestionService {
	return &SuggestionService{
		dict:       dict,
		resolver:   NewFoodResolver(dict),
		classifier: classifier,
		log:        utils.NewLogger("suggest"),
	}
}

func (s *SuggestionService) Suggest(ctx context.Context, rawText string) (*Suggestion, error) {
	term := strings.TrimSpace(rawText)
	if utf8.RuneCountInString(term) < minQueryLen {
		return nil, ErrInvalidInput
	}

	hit, err := s.resolver.Resolve(ctx, term, DefaultTolerance)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", term, err)
	}
	if hit != nil {
		return localSuggestion(hit), nil
	}

	s.log.Info("food not in local dictionary, asking classifier", "term", term)
	cl, err := s.classifier.Classify(ctx, term)
	if err != nil {
		s.log.Warn("classifier failed", "term", term, "err", err)
		if errors.Is(err, ErrClassifierParse) || errors.Is(err, ErrClassifierUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}

	category := NormalizeCategory(cl.Category)
	s.writeBack(ctx, term, cl.CorrectedName, cl.Emoji, category)

	return &Suggestion{
		CorrectedName: cl.CorrectedName,
		Emoji:         cl.Emoji,
		Category:      category,
		Confidence:    cl.Confidence,
		Source:        SourceExternal,
	}, nil
}

// writeBack caches a classification so the same spelling resolves locally
// next time. Failures never fail the suggestion.
func (s *SuggestionService) writeBack(ctx context.Context, term, name, emoji, category string) {
	f, err := s.dict.Insert(ctx, name, emoji, category, []string{term, name})
	switch {
	case errors.Is(err, ErrDuplicateFood):
		s.log.Debug("food already in dictionary", "food", name)
	case err != nil:
		s.log.Error("failed to save classified food", "food", name, "err", err)
	default:
		s.log.Info("saved classified food", "food", f.Name, "id", f.ID)
	}
}

func localSuggestion(hit *ResolvedFood) *Suggestion {
	confidence := ConfidenceHigh
	if hit.Tier == TierFuzzy {
		confidence = ConfidenceMedium
	}
	return &Suggestion{
		CorrectedName: hit.Entry.Name,
		Emoji:         hit.Entry.Emoji,
		Category:      hit.Entry.Category,
		Confidence:    confidence,
		Source:        SourceLocal,
	}
}
