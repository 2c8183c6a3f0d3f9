package services

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"nutrakids/models"
	"nutrakids/utils"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/log"
)

// DefaultTolerance is the fuzzy tier's edit distance: up to 2 typos.
const DefaultTolerance = 2

// minQueryLen is the shortest trimmed input that is worth matching.
const minQueryLen = 2

type MatchTier string

const (
	TierExact     MatchTier = "exact"
	TierAlternate MatchTier = "alternate"
	TierFuzzy     MatchTier = "fuzzy"
)

// ResolvedFood is a dictionary hit and the tier that produced it.
// Distance is only meaningful for the fuzzy tier.
type ResolvedFood struct {
	Entry    models.FoodEntry
	Tier     MatchTier
	Distance int
}

// matchTier tries one strategy; nil, nil means "no match, keep going".
type matchTier func(ctx context.Context, term string, maxDistance int) (*ResolvedFood, error)

type FoodResolver struct {
	dict  FoodDictionary
	tiers []matchTier
	log   *log.Logger
}

func NewFoodResolver(dict FoodDictionary) *FoodResolver {
	r := &FoodResolver{dict: dict, log: utils.NewLogger("resolver")}
	r.tiers = []matchTier{r.exactTier, r.alternateTier, r.fuzzyTier}
	return r
}

// Resolve maps free text to a dictionary entry, trying exact, alternate-name
// and fuzzy matching in that order. A nil result with a nil error means no
// local match.
func (r *FoodResolver) Resolve(ctx context.Context, rawText string, maxDistance int) (*ResolvedFood, error) {
	term := strings.TrimSpace(rawText)
	if utf8.RuneCountInString(term) < minQueryLen {
		return nil, nil
	}
	if maxDistance < 0 {
		maxDistance = 0
	}

	hit, err := firstMatch(ctx, r.tiers, term, maxDistance)
	if err != nil {
		return nil, err
	}
	if hit == nil {
		r.log.Debug("no local match", "term", term)
		return nil, nil
	}
	r.log.Debug("local match", "term", term, "food", hit.Entry.Name, "tier", hit.Tier, "distance", hit.Distance)
	return hit, nil
}

// firstMatch runs tiers in order and returns the first hit.
func firstMatch(ctx context.Context, tiers []matchTier, term string, maxDistance int) (*ResolvedFood, error) {
	for _, tier := range tiers {
		hit, err := tier(ctx, term, maxDistance)
		if err != nil {
			return nil, err
		}
		if hit != nil {
			return hit, nil
		}
	}
	return nil, nil
}

func (r *FoodResolver) exactTier(ctx context.Context, term string, _ int) (*ResolvedFood, error) {
	f, err := r.dict.FindExact(ctx, term)
	if err != nil || f == nil {
		return nil, err
	}
	return &ResolvedFood{Entry: *f, Tier: TierExact}, nil
}

// alternateTier asks whether any stored alternate-name list contains the term.
// Short terms can over-match ("pea" hits "peanut").
func (r *FoodResolver) alternateTier(ctx context.Context, term string, _ int) (*ResolvedFood, error) {
	f, err := r.dict.FindByAlternate(ctx, term)
	if err != nil || f == nil {
		return nil, err
	}
	return &ResolvedFood{Entry: *f, Tier: TierAlternate}, nil
}

// fuzzyTier scans the whole dictionary. Fine for thousands of entries.
func (r *FoodResolver) fuzzyTier(ctx context.Context, term string, maxDistance int) (*ResolvedFood, error) {
	all, err := r.dict.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	matches := closestFoods(term, all, maxDistance)
	if len(matches) == 0 {
		return nil, nil
	}
	return &matches[0], nil
}

// closestFoods returns every entry within maxDistance of term, closest first.
// Equal distances keep the input order, so ListAll's id order is the tiebreak.
func closestFoods(term string, foods []models.FoodEntry, maxDistance int) []ResolvedFood {
	key := models.FoodNameKey(term)
	var out []ResolvedFood
	for _, f := range foods {
		d := EditDistance(key, models.FoodNameKey(f.Name))
		if d <= maxDistance {
			out = append(out, ResolvedFood{Entry: f, Tier: TierFuzzy, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})
	return out
}

// EditDistance is the unit-cost Levenshtein distance over runes of the
// lowercased, trimmed strings.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(models.FoodNameKey(a), models.FoodNameKey(b))
}
