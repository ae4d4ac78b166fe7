package provider

import (
	"context"
	"errors"
	"os"

	"github.com/livewell-ai/livewell/config"
	"github.com/livewell-ai/livewell/models"
	openai_provider "github.com/livewell-ai/livewell/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI Client = "openai"
)

// Provider is the interface all reasoning-engine transports must satisfy
type Provider interface {
	ChatCompletion(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
}

// NewProvider creates a reasoning-engine client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Type) {
	case OpenAI:
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, errors.New("OPENAI_API_KEY not set")
		}
		return openai_provider.NewOpenAIClient(
			apiKey,
			cfg.Model,
			cfg.BaseURL,
			cfg.Temperature,
			cfg.MaxTokens,
			cfg.Timeout,
		), nil
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
