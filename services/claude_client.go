package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const anthropicVersion = "2023-06-01"

// ClaudeClient is a minimal Anthropic Messages API client.
type ClaudeClient struct {
	client *http.Client
	apiKey string
	apiURL string
	model  string
}

func NewClaudeClient(apiKey, apiURL, model string, timeout time.Duration) *ClaudeClient {
	return &ClaudeClient{
		client: &http.Client{Timeout: timeout},
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
	}
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Complete sends one user message and returns the first text block.
// Transport failures, timeouts and non-2xx statuses wrap
// ErrClassifierUnavailable; an unexpected body wraps ErrClassifierParse.
func (c *ClaudeClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: CLAUDE_API_KEY not set", ErrClassifierUnavailable)
	}

	b, err := json.Marshal(claudeRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal claude payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrClassifierUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrClassifierUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: claude api error (%d): %s", ErrClassifierUnavailable, resp.StatusCode, preview(respBytes))
	}

	var out claudeResponse
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("%w: decode claude response: %v | body: %s", ErrClassifierParse, err, preview(respBytes))
	}
	for _, block := range out.Content {
		if block.Type == "" || block.Type == "text" {
			if strings.TrimSpace(block.Text) != "" {
				return block.Text, nil
			}
		}
	}
	return "", fmt.Errorf("%w: empty claude response", ErrClassifierParse)
}

func preview(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
