// Package aiclient provides real AIBackend implementations. Each issues
// exactly one request per call; retry policy belongs to callers.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"estimation_backend/internal/estimation/ports"
)

// ChatConfig configures the OpenAI-compatible chat completions client.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ChatClient talks to any OpenAI-compatible /chat/completions endpoint.
// The zero-timeout http.Client is intentional: the per-call deadline arrives
// on the context. Safe for concurrent use.
type ChatClient struct {
	config ChatConfig
	client *http.Client
}

// NewChatClient creates a chat completions backend.
func NewChatClient(cfg ChatConfig) *ChatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &ChatClient{
		config: cfg,
		client: &http.Client{},
	}
}

// ModelName implements ports.AIBackend.
func (c *ChatClient) ModelName() string {
	return c.config.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete implements ports.AIBackend with a single POST round trip.
func (c *ChatClient) Complete(ctx context.Context, instruction, data string) (string, error) {
	payload := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: data},
		},
		Temperature: 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ports.ErrUnavailable, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ports.ErrUnavailable, err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %v", ports.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("%w: status %d", ports.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", fmt.Errorf("%w: status %d", ports.ErrUnavailable, resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ports.ErrMalformedUpstream, err)
	}
	if result.Error != nil {
		return "", fmt.Errorf("%w: %s", ports.ErrMalformedUpstream, result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ports.ErrMalformedUpstream)
	}

	return result.Choices[0].Message.Content, nil
}

var _ ports.AIBackend = (*ChatClient)(nil)
