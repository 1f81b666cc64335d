package llm

import (
	"context"
	"fmt"

	"github.com/spivot-ai/spivot-backend/internal/shared/config"
)

// Provider is the interface over the chat-completion backends used for
// document extraction.
type Provider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}

// ProviderType selects a concrete backend
type ProviderType string

const (
	ProviderOpenAI   ProviderType = "openai"
	ProviderGroq     ProviderType = "groq"
	ProviderDeepSeek ProviderType = "deepseek"
)

// NewProvider builds the configured LLM provider.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch ProviderType(cfg.LLMProvider) {
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.LLMModel), nil

	case ProviderGroq:
		if cfg.GroqKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required")
		}
		return NewGroqProvider(cfg.GroqKey, cfg.LLMModel), nil

	case ProviderDeepSeek:
		if cfg.DeepSeekKey == "" {
			return nil, fmt.Errorf("DEEPSEEK_API_KEY is required")
		}
		return NewDeepSeekProvider(cfg.DeepSeekKey, cfg.LLMModel), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider type: %s", cfg.LLMProvider)
	}
}
