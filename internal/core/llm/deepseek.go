package llm

import (
	openai "github.com/sashabaranov/go-openai"
)

// NewDeepSeekProvider creates a DeepSeek-backed provider over the
// OpenAI-compatible endpoint.
func NewDeepSeekProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = "deepseek-chat"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://api.deepseek.com/v1"

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		name:   "DeepSeek",
	}
}
