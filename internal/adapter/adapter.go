// Package adapter runs one commit from staged changes to a recorded commit:
// generate with an LLM, repair against the lint rules, and fall back to
// manual entry whenever the AI path cannot produce a valid message.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/interact"
	"github.com/lieyanc/czai/internal/lint"
	"github.com/lieyanc/czai/internal/llm"
	"github.com/lieyanc/czai/internal/manual"
	"github.com/lieyanc/czai/internal/prompt"
	"github.com/lieyanc/czai/internal/tokenizer"
	"github.com/lieyanc/czai/internal/validate"
)

// ErrNothingStaged is returned when there is nothing to commit.
var ErrNothingStaged = errors.New("no staged changes")

// Git is the repository surface the adapter needs. *git.Repo satisfies it.
type Git interface {
	HasStagedChanges(ctx context.Context) (bool, error)
	HasUnstagedChanges(ctx context.Context) (bool, error)
	HasUntrackedFiles(ctx context.Context) (bool, error)
	StageAll(ctx context.Context) error
	StagedDiff(ctx context.Context, maxChars int) (string, error)
	StagedFiles(ctx context.Context) ([]string, error)
	DiffStat(ctx context.Context) (string, error)
	Commit(ctx context.Context, message string) error
}

// Generator drafts messages. *llm.Gateway satisfies it.
type Generator interface {
	Execute(ctx context.Context, pctx prompt.Context, cfg llm.Configuration, onRetry llm.RetryFunc) (commit.Message, error)
	GenerateOnce(ctx context.Context, pctx prompt.Context, cfg llm.Configuration) (commit.Message, error)
}

// UI is the interactive surface: prompts plus notices and previews.
type UI interface {
	interact.Prompter
	interact.Printer
}

// Adapter wires the collaborators of one run.
type Adapter struct {
	git      Git
	gen      Generator
	ui       UI
	progress interact.Progress

	cfg           llm.Configuration
	commitlint    config.Commitlint
	maxDiffChars  int
	maxDiffTokens int

	getenv func(string) string
	out    io.Writer
	logger zerolog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithConfiguration sets the LLM configuration. The API key may be empty;
// it is then resolved from the environment or asked for.
func WithConfiguration(cfg llm.Configuration) Option {
	return func(a *Adapter) {
		a.cfg = cfg
	}
}

// WithCommitlint sets the lint rules and prompt settings.
func WithCommitlint(cl config.Commitlint) Option {
	return func(a *Adapter) {
		a.commitlint = cl
	}
}

// WithDiffLimits bounds the diff sent to the model. Zero chars sends the
// whole diff; zero tokens uses a provider default.
func WithDiffLimits(maxChars, maxTokens int) Option {
	return func(a *Adapter) {
		a.maxDiffChars = maxChars
		a.maxDiffTokens = maxTokens
	}
}

// WithProgress shows long calls behind p.
func WithProgress(p interact.Progress) Option {
	return func(a *Adapter) {
		a.progress = p
	}
}

// WithEnv replaces os.Getenv for API key lookup.
func WithEnv(getenv func(string) string) Option {
	return func(a *Adapter) {
		a.getenv = getenv
	}
}

// WithOutput sets where dry runs print the message.
func WithOutput(w io.Writer) Option {
	return func(a *Adapter) {
		a.out = w
	}
}

// WithLogger sets the logger for the adapter.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// New returns an Adapter with conventional lint rules and the default LLM
// configuration unless overridden.
func New(g Git, gen Generator, ui UI, opts ...Option) *Adapter {
	a := &Adapter{
		git:        g,
		gen:        gen,
		ui:         ui,
		cfg:        llm.DefaultConfiguration(),
		commitlint: config.DefaultCommitlint(),
		getenv:     os.Getenv,
		out:        os.Stdout,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunOptions are the per-invocation switches.
type RunOptions struct {
	// DryRun prints the final message instead of committing.
	DryRun bool
	// Manual skips generation.
	Manual bool
	// StageAll stages every change when the index is empty.
	StageAll bool
}

// Run produces a commit message and records it. It returns the message
// that was committed (or printed, for a dry run).
func (a *Adapter) Run(ctx context.Context, opts RunOptions) (commit.Message, error) {
	if err := a.ensureStaged(ctx, opts.StageAll); err != nil {
		return commit.Message{}, err
	}

	pctx := prompt.Extract(a.commitlint.Rules, a.commitlint.Prompt)
	linter := lint.New(a.commitlint.Rules)

	var (
		msg commit.Message
		err error
	)
	if opts.Manual || a.cfg.Mode == llm.ModeManual {
		msg, err = a.manualMessage(pctx, linter, commit.Message{})
	} else {
		msg, err = a.aiMessage(ctx, pctx, linter)
	}
	if err != nil {
		return commit.Message{}, err
	}

	if opts.DryRun {
		fmt.Fprintln(a.out, msg.String())
		return msg, nil
	}
	if err := a.git.Commit(ctx, msg.String()); err != nil {
		return commit.Message{}, fmt.Errorf("commit: %w", err)
	}
	a.logger.Info().Str("header", msg.Header().String()).Msg("committed")
	return msg, nil
}

func (a *Adapter) ensureStaged(ctx context.Context, stageAll bool) error {
	staged, err := a.git.HasStagedChanges(ctx)
	if err != nil {
		return fmt.Errorf("check staged changes: %w", err)
	}
	if staged {
		return nil
	}

	unstaged, err := a.git.HasUnstagedChanges(ctx)
	if err != nil {
		return fmt.Errorf("check unstaged changes: %w", err)
	}
	untracked, err := a.git.HasUntrackedFiles(ctx)
	if err != nil {
		return fmt.Errorf("check untracked files: %w", err)
	}
	if !unstaged && !untracked {
		return ErrNothingStaged
	}

	if !stageAll {
		ok, err := a.ui.Confirm("No staged changes. Stage all changes?", true)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNothingStaged
		}
	}
	if err := a.git.StageAll(ctx); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}
	if staged, err = a.git.HasStagedChanges(ctx); err != nil {
		return fmt.Errorf("check staged changes: %w", err)
	}
	if !staged {
		return ErrNothingStaged
	}
	return nil
}

type nextStep string

const (
	stepCommit     nextStep = "commit"
	stepEdit       nextStep = "edit"
	stepRegenerate nextStep = "regenerate"
	stepCancel     nextStep = "cancel"
)

var nextChoices = []interact.Choice{
	{Label: "Commit", Value: string(stepCommit)},
	{Label: "Edit", Value: string(stepEdit)},
	{Label: "Regenerate", Value: string(stepRegenerate)},
	{Label: "Cancel", Value: string(stepCancel)},
}

func (a *Adapter) aiMessage(ctx context.Context, pctx prompt.Context, linter *lint.Linter) (commit.Message, error) {
	cfg, err := a.withAPIKey(a.cfg)
	if err != nil {
		return commit.Message{}, err
	}

	pctx, err = a.withDiff(ctx, pctx, cfg)
	if err != nil {
		return commit.Message{}, err
	}

	validator := validate.New(linter,
		validate.WithFixer(validate.NewRepairer(linter,
			validate.WithRegenerator(a.gen, cfg),
			validate.WithRepairLogger(a.logger),
		)),
		validate.WithLogger(a.logger),
	)

	for {
		draft, err := a.generate(ctx, pctx, cfg)
		if err != nil {
			if errors.Is(err, interact.ErrCancelled) || errors.Is(err, context.Canceled) {
				return commit.Message{}, interact.ErrCancelled
			}
			a.ui.Notice(fallbackNotice(err))
			a.logger.Warn().Err(err).Msg("generation failed, falling back to manual entry")
			return a.manualMessage(pctx, linter, commit.Message{})
		}

		msg, ok, err := a.repair(ctx, validator, draft, pctx, cfg)
		if err != nil {
			return commit.Message{}, err
		}
		if !ok {
			errs := linter.Lint(draft.String()).Errors
			a.ui.Notice("The generated message does not pass the commit rules (" +
				strings.Join(errs, "; ") + "). Switching to manual entry.")
			return a.manualMessage(pctx, linter, draft)
		}

		a.ui.Preview("Suggested commit message", msg.String())
		step, err := a.ui.Select("What would you like to do?", nextChoices, string(stepCommit))
		if err != nil {
			return commit.Message{}, err
		}
		switch nextStep(step) {
		case stepCommit:
			return msg, nil
		case stepEdit:
			return a.manualMessage(pctx, linter, msg)
		case stepRegenerate:
			a.logger.Debug().Msg("regenerating")
			continue
		default:
			return commit.Message{}, interact.ErrCancelled
		}
	}
}

func (a *Adapter) withAPIKey(cfg llm.Configuration) (llm.Configuration, error) {
	if cfg.APIKey != "" || !config.NeedsAPIKey(cfg.Provider) {
		return cfg, nil
	}
	if key := config.ResolveAPIKey(cfg.Provider, a.getenv); key != "" {
		return cfg.WithAPIKey(key), nil
	}
	// An unsupported provider is reported by the gateway, not by a key prompt.
	if !knownProvider(cfg.Provider) {
		return cfg, nil
	}
	key, err := a.ui.Password(fmt.Sprintf("API key for %s (not saved)", cfg.Provider))
	if err != nil {
		return cfg, err
	}
	return cfg.WithAPIKey(strings.TrimSpace(key)), nil
}

func knownProvider(id llm.ProviderID) bool {
	for _, p := range llm.ProviderNames() {
		if p == id {
			return true
		}
	}
	return false
}

func (a *Adapter) withDiff(ctx context.Context, pctx prompt.Context, cfg llm.Configuration) (prompt.Context, error) {
	diff, err := a.git.StagedDiff(ctx, a.maxDiffChars)
	if err != nil {
		return pctx, fmt.Errorf("read staged diff: %w", err)
	}
	files, err := a.git.StagedFiles(ctx)
	if err != nil {
		return pctx, fmt.Errorf("list staged files: %w", err)
	}

	budget := a.maxDiffTokens
	if budget <= 0 {
		budget = tokenizer.DefaultLimit(string(cfg.Provider), cfg.ResolvedModel())
	}
	counter := tokenizer.NewCounter(cfg.ResolvedModel())
	if n := counter.Count(diff); n > budget {
		a.logger.Debug().Int("tokens", n).Int("budget", budget).Msg("truncating diff")
		diff = counter.Truncate(diff, budget)
	}

	if stat, err := a.git.DiffStat(ctx); err == nil {
		a.logger.Debug().Str("stat", stat).Int("files", len(files)).Msg("staged changes")
	}

	pctx.Diff = diff
	pctx.Files = files
	return pctx, nil
}

func (a *Adapter) generate(ctx context.Context, pctx prompt.Context, cfg llm.Configuration) (commit.Message, error) {
	var msg commit.Message
	err := a.runTask(ctx, "Generating commit message", func(ctx context.Context, status func(string)) error {
		var err error
		msg, err = a.gen.Execute(ctx, pctx, cfg, func(attempt, maxAttempts int, err error) {
			status(fmt.Sprintf("Attempt %d/%d failed: %v. Retrying...", attempt, maxAttempts, err))
		})
		return err
	})
	return msg, err
}

func (a *Adapter) repair(ctx context.Context, v *validate.Validator, draft commit.Message, pctx prompt.Context, cfg llm.Configuration) (commit.Message, bool, error) {
	var (
		msg commit.Message
		ok  bool
	)
	err := a.runTask(ctx, "Checking commit message", func(ctx context.Context, _ func(string)) error {
		msg, ok = v.Execute(ctx, draft, validate.RunOptions{
			MaxRetries: cfg.ValidationMaxRetries,
			Context:    &pctx,
		})
		return ctx.Err()
	})
	if errors.Is(err, context.Canceled) {
		return msg, false, interact.ErrCancelled
	}
	return msg, ok, err
}

func (a *Adapter) runTask(ctx context.Context, title string, task interact.Task) error {
	if a.progress == nil {
		return task(ctx, func(string) {})
	}
	return a.progress.Run(ctx, title, task)
}

// manualMessage runs the manual flow and lints the result. Failing messages
// are shown with their errors and may still be committed on request.
func (a *Adapter) manualMessage(pctx prompt.Context, linter *lint.Linter, seed commit.Message) (commit.Message, error) {
	flow := manual.New(a.ui, a.ui, manual.WithLogger(a.logger))
	for {
		msg, err := flow.Edit(pctx, seed)
		if err != nil {
			return commit.Message{}, err
		}

		res := linter.Lint(msg.String())
		for _, w := range res.Warnings {
			a.ui.Notice("warning: " + w)
		}
		if res.Valid {
			return msg, nil
		}

		a.ui.Notice("The message does not pass the commit rules: " + strings.Join(res.Errors, "; "))
		anyway, err := a.ui.Confirm("Commit anyway?", false)
		if err != nil {
			return commit.Message{}, err
		}
		if anyway {
			return msg, nil
		}
		seed = msg
	}
}

func fallbackNotice(err error) string {
	var exhausted *llm.GenerationExhaustedError
	switch {
	case llm.IsConfigError(err):
		return fmt.Sprintf("LLM provider is not usable (%v). Switching to manual entry.", err)
	case errors.As(err, &exhausted):
		return fmt.Sprintf("Could not generate a message after %d attempts (%v). Switching to manual entry.", exhausted.Attempts, exhausted.Err)
	}
	return fmt.Sprintf("Generation failed (%v). Switching to manual entry.", err)
}
