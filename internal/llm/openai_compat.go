package llm

import (
	"context"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
	"github.com/openai/openai-go/v3/option"
)

// placeholderKey is sent to local servers that ignore authentication.
const placeholderKey = "czai"

// OpenAICompatProvider implements Provider for OpenAI-compatible APIs
// (DeepSeek, OpenRouter, Ollama, custom endpoints).
type OpenAICompatProvider struct {
	baseURL     string
	requiresKey bool
}

// NewOpenAICompatProvider creates a provider using an OpenAI-compatible API
// endpoint. An empty baseURL means the configuration must supply one.
func NewOpenAICompatProvider(baseURL string, requiresKey bool) *OpenAICompatProvider {
	return &OpenAICompatProvider{baseURL: baseURL, requiresKey: requiresKey}
}

func (p *OpenAICompatProvider) endpoint(cfg Configuration) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return p.baseURL
}

func (p *OpenAICompatProvider) CheckConfig(cfg Configuration) error {
	if p.endpoint(cfg) == "" {
		return &ConfigError{Provider: cfg.Provider, Reason: "base_url is required"}
	}
	if p.requiresKey {
		return requireAPIKey(cfg)
	}
	return nil
}

func (p *OpenAICompatProvider) Generate(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error) {
	return generateWith(ctx, pctx, cfg, func(ctx context.Context, cfg Configuration, system, user string) (string, error) {
		key := cfg.APIKey
		if key == "" {
			key = placeholderKey
		}
		return chatComplete(ctx, cfg.ResolvedModel(), system, user,
			option.WithAPIKey(key),
			option.WithBaseURL(p.endpoint(cfg)),
		)
	})
}
