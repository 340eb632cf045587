package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/prompt"
)

// DefaultRetryDelay is the fixed pause between generation attempts.
const DefaultRetryDelay = time.Second

// RetryFunc is notified before each retry. It must not block for long.
type RetryFunc func(attempt, maxAttempts int, err error)

// Gateway selects a provider for a configuration and runs generation with a
// bounded number of sequential attempts.
type Gateway struct {
	registry *Registry
	delay    time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	logger   zerolog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithRetryDelay overrides DefaultRetryDelay.
func WithRetryDelay(d time.Duration) GatewayOption {
	return func(g *Gateway) {
		g.delay = d
	}
}

// WithSleep replaces the timer used between attempts.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) GatewayOption {
	return func(g *Gateway) {
		g.sleep = sleep
	}
}

// WithLogger sets the logger for the gateway.
func WithLogger(logger zerolog.Logger) GatewayOption {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// NewGateway creates a Gateway over registry.
func NewGateway(registry *Registry, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		registry: registry,
		delay:    DefaultRetryDelay,
		sleep:    sleepContext,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) resolve(cfg Configuration) (Provider, error) {
	p, err := g.registry.Lookup(cfg.Provider)
	if err != nil {
		return nil, err
	}
	if checker, ok := p.(ConfigChecker); ok {
		if err := checker.CheckConfig(cfg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Execute generates a message, retrying failed attempts up to
// cfg.MaxRetries times in total. Configuration errors are returned at once;
// otherwise the last failure is wrapped in a GenerationExhaustedError.
func (g *Gateway) Execute(ctx context.Context, pctx prompt.Context, cfg Configuration, onRetry RetryFunc) (commit.Message, error) {
	p, err := g.resolve(cfg)
	if err != nil {
		return commit.Message{}, err
	}

	maxAttempts := cfg.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		start := time.Now()
		msg, err := p.Generate(ctx, pctx, cfg)
		latency := time.Since(start)
		if err == nil {
			g.logger.Debug().
				Str("provider", string(cfg.Provider)).
				Str("model", cfg.ResolvedModel()).
				Int("attempt", attempt).
				Dur("latency", latency).
				Msg("commit message generated")
			return msg, nil
		}
		lastErr = err

		g.logger.Warn().
			Err(err).
			Str("provider", string(cfg.Provider)).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Dur("latency", latency).
			Msg("generation attempt failed")

		if attempt == maxAttempts {
			break
		}
		if onRetry != nil {
			onRetry(attempt, maxAttempts, err)
		}
		if err := g.sleep(ctx, g.delay); err != nil {
			return commit.Message{}, err
		}
	}

	return commit.Message{}, &GenerationExhaustedError{Attempts: maxAttempts, Err: lastErr}
}

// GenerateOnce performs a single attempt with no retry.
func (g *Gateway) GenerateOnce(ctx context.Context, pctx prompt.Context, cfg Configuration) (commit.Message, error) {
	p, err := g.resolve(cfg)
	if err != nil {
		return commit.Message{}, err
	}
	return p.Generate(ctx, pctx, cfg)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
