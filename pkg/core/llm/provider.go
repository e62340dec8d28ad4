// Package llm wraps the language model used for the optional narrative
// section of the analysis report.
package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// Provider names accepted by NewProvider.
const (
	ProviderNone   = "none"
	ProviderGemini = "gemini"
)

// NewProvider returns the configured provider, or nil when narratives are
// disabled.
func NewProvider(name, model, apiKey string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderGemini:
		if apiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
		}
		return &GeminiProvider{Model: model, APIKey: apiKey}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", name)
	}
}

// StaticProvider returns a fixed response. Used for offline runs and tests.
type StaticProvider struct {
	Response string
	Err      error

	LastPrompt string
}

func (p *StaticProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	p.LastPrompt = prompt
	if p.Err != nil {
		return "", p.Err
	}
	return p.Response, nil
}
