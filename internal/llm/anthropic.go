package llm

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
)

// AnthropicProvider implements Provider using the official Anthropic SDK.
type AnthropicProvider struct{}

// NewAnthropicProvider creates a provider for the Anthropic API.
func NewAnthropicProvider() *AnthropicProvider {
	return &AnthropicProvider{}
}

func (p *AnthropicProvider) CheckConfig(cfg Configuration) error {
	return requireAPIKey(cfg)
}

func (p *AnthropicProvider) Generate(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error) {
	return generateWith(ctx, pctx, cfg, p.complete)
}

func (p *AnthropicProvider) complete(ctx context.Context, cfg Configuration, system, user string) (string, error) {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		MaxTokens: 1024,
		Model:     anthropic.Model(cfg.ResolvedModel()),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(variant.Text)
		}
	}
	return b.String(), nil
}
