// Package textgen wraps the Gemini API behind the orchestrator's
// text-generation port. The conversation itself is fully scripted; this
// backend exists for the status probe and ad-hoc generation.
package textgen

import (
	"context"
	"fmt"

	"legal_intake_backend/platform/config"
	"legal_intake_backend/platform/logger"

	"google.golang.org/genai"
)

type Gemini struct {
	client *genai.Client
	model  string
	log    *logger.Logger
}

// NewGemini returns nil when no API key is configured.
func NewGemini(ctx context.Context, cfg config.GeminiConfig, log *logger.Logger) (*Gemini, error) {
	if !cfg.IsGeminiEnabled() {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GetGeminiAPIKey(),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  cfg.GetGeminiModel(),
		log:    log,
	}, nil
}

// Generate produces one completion for the given prompt.
func (g *Gemini) Generate(ctx context.Context, prompt, sessionID string) (string, error) {
	if g == nil {
		return "", fmt.Errorf("text generation not configured")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}

	g.log.Debug("gemini completion", "session_id", sessionID, "model", g.model)
	return text, nil
}
