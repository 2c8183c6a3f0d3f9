package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Classification is the classifier's structured answer for one food name.
type Classification struct {
	CorrectedName string `json:"correctedName"`
	Emoji         string `json:"emoji"`
	Category      string `json:"category"`
	Confidence    string `json:"confidence"`
}

// Classifier turns free text into a food classification. Implementations are
// treated as opaque and non-deterministic.
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}

// ClaudeClassifier classifies food names with a text-generation model.
type ClaudeClassifier struct {
	claude *ClaudeClient
}

func NewClaudeClassifier(c *ClaudeClient) *ClaudeClassifier {
	return &ClaudeClassifier{claude: c}
}

const classifierMaxTokens = 200

func classifierPrompt(foodName string) string {
	return fmt.Sprintf(`I'm building a food tracking app for kids. Parent entered food: %q

Please respond ONLY with a JSON object (no markdown, no explanation) with:
- correctedName: (proper spelling of the food)
- emoji: (single food-related emoji)
- category: (one of: %s)
- confidence: (high, medium, or low)

Example response:
{"correctedName": "Broccoli", "emoji": "🥦", "category": "Vegetables", "confidence": "high"}`,
		foodName, strings.Join(FoodCategories, ", "))
}

func (c *ClaudeClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	raw, err := c.claude.Complete(ctx, classifierPrompt(strings.TrimSpace(text)), classifierMaxTokens)
	if err != nil {
		return nil, err
	}
	return ParseClassification(raw)
}

// ParseClassification decodes and validates the model's JSON answer.
// A surrounding markdown code fence is tolerated.
func ParseClassification(raw string) (*Classification, error) {
	body := stripCodeFence(raw)

	var cl Classification
	if err := json.Unmarshal([]byte(body), &cl); err != nil {
		return nil, fmt.Errorf("%w: %v | body: %s", ErrClassifierParse, err, preview([]byte(body)))
	}
	cl.CorrectedName = strings.TrimSpace(cl.CorrectedName)
	cl.Emoji = strings.TrimSpace(cl.Emoji)
	cl.Category = strings.TrimSpace(cl.Category)
	cl.Confidence = strings.ToLower(strings.TrimSpace(cl.Confidence))

	var missing []string
	if cl.CorrectedName == "" {
		missing = append(missing, "correctedName")
	}
	if cl.Emoji == "" {
		missing = append(missing, "emoji")
	}
	if cl.Category == "" {
		missing = append(missing, "category")
	}
	if cl.Confidence == "" {
		missing = append(missing, "confidence")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrClassifierParse, strings.Join(missing, ", "))
	}
	switch cl.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return nil, fmt.Errorf("%w: unknown confidence %q", ErrClassifierParse, cl.Confidence)
	}
	return &cl, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
