package llm

import (
	"context"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
)

// ProviderID names an LLM backend.
type ProviderID string

// Mode selects AI generation or manual entry.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Default retry budgets.
const (
	DefaultMaxRetries           = 3
	DefaultValidationMaxRetries = 3
)

// Configuration is the per-run LLM setting. It is passed by value; the With
// methods return modified copies.
type Configuration struct {
	Provider             ProviderID
	APIKey               string
	Mode                 Mode
	Model                string
	BaseURL              string
	Language             string
	MaxRetries           int
	ValidationMaxRetries int
}

// DefaultConfiguration returns an auto-mode configuration with the default
// retry budgets and no provider.
func DefaultConfiguration() Configuration {
	return Configuration{
		Mode:                 ModeAuto,
		Language:             "en",
		MaxRetries:           DefaultMaxRetries,
		ValidationMaxRetries: DefaultValidationMaxRetries,
	}
}

func (c Configuration) WithProvider(p ProviderID) Configuration { c.Provider = p; return c }
func (c Configuration) WithAPIKey(key string) Configuration    { c.APIKey = key; return c }
func (c Configuration) WithMode(m Mode) Configuration           { c.Mode = m; return c }
func (c Configuration) WithModel(model string) Configuration    { c.Model = model; return c }
func (c Configuration) WithBaseURL(url string) Configuration    { c.BaseURL = url; return c }
func (c Configuration) WithLanguage(lang string) Configuration  { c.Language = lang; return c }
func (c Configuration) WithMaxRetries(n int) Configuration      { c.MaxRetries = n; return c }

func (c Configuration) WithValidationMaxRetries(n int) Configuration {
	c.ValidationMaxRetries = n
	return c
}

// ResolvedModel returns the configured model or the provider default.
func (c Configuration) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

// Provider drafts a commit message for a prompt context.
type Provider interface {
	// Generate performs one request. Any failure, including an unparsable
	// response, is returned as an error.
	Generate(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error)
}

// ConfigChecker is implemented by providers that can reject a configuration
// before any request is made.
type ConfigChecker interface {
	CheckConfig(cfg Configuration) error
}

// completeFunc sends a system and user prompt and returns the raw reply.
type completeFunc func(ctx context.Context, cfg Configuration, system, user string) (string, error)

func generateWith(ctx context.Context, pctx prompt.Context, cfg Configuration, complete completeFunc) (commit.Message, error) {
	raw, err := complete(ctx, cfg, buildSystemPrompt(pctx, cfg.Language), buildUserPrompt(pctx))
	if err != nil {
		return commit.Message{}, err
	}
	return ParseResponse(raw)
}

func requireAPIKey(cfg Configuration) error {
	if cfg.APIKey == "" {
		return &ConfigError{Provider: cfg.Provider, Reason: "API key not set"}
	}
	return nil
}
