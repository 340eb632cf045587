package llm

import (
	"context"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIProvider implements Provider using the official OpenAI SDK.
type OpenAIProvider struct{}

// NewOpenAIProvider creates a provider for the official OpenAI API.
func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{}
}

func (p *OpenAIProvider) CheckConfig(cfg Configuration) error {
	return requireAPIKey(cfg)
}

func (p *OpenAIProvider) Generate(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error) {
	return generateWith(ctx, pctx, cfg, func(ctx context.Context, cfg Configuration, system, user string) (string, error) {
		return chatComplete(ctx, cfg.ResolvedModel(), system, user, option.WithAPIKey(cfg.APIKey))
	})
}

// chatComplete sends one non-streaming chat completion. The SDK's own
// retries are disabled; the gateway owns the retry policy.
func chatComplete(ctx context.Context, model, system, user string, opts ...option.RequestOption) (string, error) {
	opts = append(opts, option.WithMaxRetries(0))
	client := openai.NewClient(opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &MalformedResponseError{Reason: "no choices in completion"}
	}
	return resp.Choices[0].Message.Content, nil
}
