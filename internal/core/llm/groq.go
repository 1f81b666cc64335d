package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

// NewGroqProvider creates a Groq-backed provider. Groq speaks the OpenAI
// wire protocol, so it reuses the OpenAI client with a different base URL.
func NewGroqProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "llama-3.1-70b-versatile"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://api.groq.com/openai/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		name:   "Groq",
	}
}
