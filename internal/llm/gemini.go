package llm

import (
	"context"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
	"google.golang.org/genai"
)

// GeminiProvider implements Provider using the Google Gen AI SDK.
type GeminiProvider struct{}

// NewGeminiProvider creates a provider for the Gemini API.
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{}
}

func (p *GeminiProvider) CheckConfig(cfg Configuration) error {
	return requireAPIKey(cfg)
}

func (p *GeminiProvider) Generate(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error) {
	return generateWith(ctx, pctx, cfg, p.complete)
}

func (p *GeminiProvider) complete(ctx context.Context, cfg Configuration, system, user string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(ctx, cfg.ResolvedModel(), genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
