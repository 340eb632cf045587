// Package validate lints candidate commit messages and drives the bounded
// repair loop that runs when a candidate fails.
package validate

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/lint"
	"github.com/lieyanc/czai/internal/prompt"
)

// DefaultMaxRetries bounds the loop when no explicit budget is given.
const DefaultMaxRetries = 3

// Linter checks a rendered message.
type Linter interface {
	Lint(raw string) lint.Result
}

// Fixer attempts to turn an invalid message into a valid one. ok is false
// when no fix was found.
type Fixer interface {
	Fix(ctx context.Context, msg commit.Message, res lint.Result, pctx *prompt.Context) (fixed commit.Message, ok bool)
}

// Validator runs the Validating -> Fixing -> Validating state machine.
type Validator struct {
	linter Linter
	fixer  Fixer
	logger zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithFixer replaces the repair strategy.
func WithFixer(f Fixer) Option {
	return func(v *Validator) {
		v.fixer = f
	}
}

// WithLogger sets the logger for the validator.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New returns a Validator using linter. Without WithFixer it repairs with
// deterministic text fixes only.
func New(linter Linter, opts ...Option) *Validator {
	v := &Validator{linter: linter, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(v)
	}
	if v.fixer == nil {
		v.fixer = NewRepairer(linter, WithRepairLogger(v.logger))
	}
	return v
}

// Validate lints the rendered message.
func (v *Validator) Validate(msg commit.Message) lint.Result {
	return v.linter.Lint(msg.String())
}

// RunOptions tune one Execute call.
type RunOptions struct {
	// NoFix makes Execute return after the first failed validation.
	NoFix bool
	// MaxRetries is the total attempt budget; values below 1 use
	// DefaultMaxRetries.
	MaxRetries int
	// Context enables LLM-guided repair when the fixer supports it.
	Context *prompt.Context
}

// Execute validates msg and, unless NoFix is set, repairs it until it is
// valid or the budget is spent. ok is false when no valid message was
// produced.
//
// A fix attempt that yields nothing still consumes one slot of the budget;
// the next iteration revalidates the unchanged message and gives the fixer
// a fresh try.
func (v *Validator) Execute(ctx context.Context, msg commit.Message, opts RunOptions) (commit.Message, bool) {
	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = DefaultMaxRetries
	}

	current := msg
	attempts := 0
	for attempts < maxRetries {
		res := v.Validate(current)
		if res.Valid {
			if attempts > 0 {
				v.logger.Info().Int("attempts", attempts).Msg("commit message repaired")
			}
			return current, true
		}
		if opts.NoFix {
			return commit.Message{}, false
		}

		attempts++
		if attempts >= maxRetries {
			v.logger.Warn().
				Int("attempts", attempts).
				Strs("errors", res.Errors).
				Msg("commit message still invalid, giving up")
			return commit.Message{}, false
		}
		if ctx.Err() != nil {
			return commit.Message{}, false
		}

		v.logger.Debug().
			Int("attempt", attempts).
			Int("max_attempts", maxRetries).
			Strs("errors", res.Errors).
			Msg("repairing commit message")

		if fixed, ok := v.fixer.Fix(ctx, current, res, opts.Context); ok {
			current = fixed
		}
	}
	return commit.Message{}, false
}
