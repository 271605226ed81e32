package analytics

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PumpStat/internal/domain/service"
	"PumpStat/pkg/config"
)

// ErrEmptyCompletion is returned when the service answered without text.
var ErrEmptyCompletion = errors.New("completion returned no text")

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string              `json:"model"`
	MaxTokens int                 `json:"max_tokens"`
	Messages  []completionMessage `json:"messages"`
}

type completionResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// CompletionClient calls a messages-style text-completion API.
type CompletionClient struct {
	*HTTPServiceBase
	model     string
	maxTokens int
	retries   int
}

var _ service.CompletionService = (*CompletionClient)(nil)

// NewCompletionClient builds a client from the AI section of the config.
func NewCompletionClient(cfg config.AIConfig) *CompletionClient {
	return &CompletionClient{
		HTTPServiceBase: NewHTTPServiceBase(cfg.BaseURL, cfg.Timeout, map[string]string{
			"x-api-key":         cfg.APIKey,
			"anthropic-version": cfg.Version,
		}),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		retries:   cfg.Retries,
	}
}

// Complete sends prompt as a single user message and returns the first
// content block's text.
func (c *CompletionClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := completionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  []completionMessage{{Role: "user", Content: prompt}},
	}

	var resp completionResponse
	if err := c.PostJSONWithRetry(ctx, "", req, &resp, c.retries); err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	if len(resp.Content) == 0 || strings.TrimSpace(resp.Content[0].Text) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Content[0].Text, nil
}
