package aiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"estimation_backend/internal/estimation/ports"
)

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClient wraps the Gemini API behind ports.AIBackend.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini backend.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.Model}, nil
}

// ModelName implements ports.AIBackend.
func (g *GeminiClient) ModelName() string {
	return g.model
}

// Complete implements ports.AIBackend with a single generate call.
func (g *GeminiClient) Complete(ctx context.Context, instruction, data string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(data), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", ports.ErrMalformedUpstream)
	}
	return text, nil
}

func classifyGeminiError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ports.ErrTimeout, err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", ports.ErrUnauthorized, err)
		default:
			return fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %v", ports.ErrUnavailable, err)
}

var _ ports.AIBackend = (*GeminiClient)(nil)
