package factory

import (
	"context"
	"fmt"

	"db-chat-be/pkg/llm"
	"db-chat-be/pkg/llm/gemini"
	"db-chat-be/pkg/llm/ollama"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama", "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		provider, err := ollama.NewOllamaProvider(baseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "gemini":
		provider, err := gemini.NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
