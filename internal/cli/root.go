package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/lieyanc/czai/internal/adapter"
	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/git"
	"github.com/lieyanc/czai/internal/interact"
	"github.com/lieyanc/czai/internal/llm"
	"github.com/lieyanc/czai/internal/tui"
	"github.com/lieyanc/czai/internal/tui/setup"
)

var rootFlags struct {
	dryRun   bool
	manual   bool
	stageAll bool
	provider string
	model    string
	verbose  bool
}

var rootCmd = &cobra.Command{
	Use:           "czai",
	Short:         "Write conventional commit messages with AI",
	Long:          "czai drafts a commit message from the staged diff, repairs it until it passes the repository's commitlint rules, and falls back to guided manual entry.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDefault,
}

func init() {
	f := rootCmd.Flags()
	f.BoolVar(&rootFlags.dryRun, "dry-run", false, "print the message instead of committing")
	f.BoolVar(&rootFlags.manual, "manual", false, "skip generation and write the message by hand")
	f.BoolVarP(&rootFlags.stageAll, "all", "a", false, "stage all changes when nothing is staged")
	f.StringVar(&rootFlags.provider, "provider", "", "override the configured provider")
	f.StringVar(&rootFlags.model, "model", "", "override the configured model")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "log debug output to stderr")
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, interact.ErrCancelled), errors.Is(err, huh.ErrUserAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, tui.Dim("Cancelled."))
		return 0
	case errors.Is(err, errLintFailed):
		return 1
	}
	fmt.Fprintln(os.Stderr, tui.Error(err.Error()))
	return 1
}

func runDefault(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := newLogger(os.Stderr, rootFlags.verbose, os.Getenv)

	store := config.DefaultStore()
	cfg, err := loadOrSetup(store)
	if err != nil {
		return err
	}
	if rootFlags.provider != "" {
		cfg.Provider = rootFlags.provider
		// A model chosen for another provider does not carry over.
		if rootFlags.model == "" {
			cfg.Model = ""
		}
	}
	if rootFlags.model != "" {
		cfg.Model = rootFlags.model
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", store.Path(), err)
	}

	repo := git.Open("")
	if !repo.IsRepo(ctx) {
		return errors.New("not a git repository")
	}
	root, err := repo.Root(ctx)
	if err != nil {
		return err
	}
	repo = git.Open(root)

	commitlint, err := config.LoadCommitlint(root)
	if err != nil {
		return err
	}
	if commitlint.Path != "" {
		logger.Debug().Str("path", commitlint.Path).Msg("loaded commitlint config")
	}

	gateway := llm.NewGateway(llm.DefaultRegistry(), llm.WithLogger(logger))
	a := adapter.New(repo, gateway, tui.NewPrompter(os.Stdout),
		adapter.WithConfiguration(cfg.Configuration("")),
		adapter.WithCommitlint(commitlint),
		adapter.WithDiffLimits(cfg.MaxDiffChars, cfg.MaxDiffTokens),
		adapter.WithProgress(tui.NewSpinner(os.Stderr)),
		adapter.WithOutput(os.Stdout),
		adapter.WithLogger(logger),
	)

	msg, err := a.Run(ctx, adapter.RunOptions{
		DryRun:   rootFlags.dryRun,
		Manual:   rootFlags.manual,
		StageAll: rootFlags.stageAll,
	})
	if errors.Is(err, adapter.ErrNothingStaged) {
		return errors.New("nothing to commit")
	}
	if err != nil {
		return err
	}
	if !rootFlags.dryRun {
		fmt.Println(tui.Success("Committed: " + msg.Header().String()))
	}
	return nil
}

// loadOrSetup returns the stored config, running the setup wizard when none
// exists and the migration editor when it is outdated.
func loadOrSetup(store *config.Store) (*config.Config, error) {
	if !store.Exists() {
		cfg, err := setup.RunWizard(store)
		if err != nil {
			return nil, fmt.Errorf("setup failed: %w", err)
		}
		return cfg, nil
	}

	cfg, err := store.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if config.NeedsMigration(cfg) {
		cfg, err = setup.RunMigration(store, cfg)
		if err != nil {
			return nil, fmt.Errorf("config migration failed: %w", err)
		}
	}
	return cfg, nil
}
