package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/config"
	"github.com/lieyanc/czai/internal/git"
	"github.com/lieyanc/czai/internal/lint"
	"github.com/lieyanc/czai/internal/tui"
	"github.com/lieyanc/czai/internal/validate"
)

// errLintFailed makes the process exit 1 without printing another error;
// the lint findings have already been shown.
var errLintFailed = errors.New("commit message does not pass lint")

var lintFlags struct {
	fix        bool
	write      bool
	maxRetries int
}

var lintCmd = &cobra.Command{
	Use:   "lint [file]",
	Short: "Check a commit message against the repository's commitlint rules",
	Long: "Lint a commit message read from file, or from stdin when no file is given.\n" +
		"With --fix the message is repaired where possible and printed; --write also\n" +
		"saves it back, which makes 'czai lint --fix --write \"$1\"' usable as a commit-msg hook.",
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	f := lintCmd.Flags()
	f.BoolVar(&lintFlags.fix, "fix", false, "repair the message and print it")
	f.BoolVarP(&lintFlags.write, "write", "w", false, "with --fix, write the repaired message back to file")
	f.IntVar(&lintFlags.maxRetries, "max-retries", validate.DefaultMaxRetries, "validation attempts for --fix")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), rootFlags.verbose, os.Getenv)

	raw, err := readMessage(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	dir := ""
	if root, err := git.Open("").Root(cmd.Context()); err == nil {
		dir = root
	}
	cl, err := config.LoadCommitlint(dir)
	if err != nil {
		return err
	}

	linter := lint.New(cl.Rules)
	if !lintFlags.fix {
		if !report(cmd.ErrOrStderr(), linter.Lint(raw)) {
			return errLintFailed
		}
		return nil
	}

	fixed, ok := fixMessage(cmd.Context(), linter, raw, lintFlags.maxRetries, validate.WithLogger(logger))
	if !ok {
		report(cmd.ErrOrStderr(), linter.Lint(fixed))
		return errLintFailed
	}

	if lintFlags.write && len(args) == 1 {
		if err := os.WriteFile(args[0], []byte(strings.TrimRight(fixed, "\n")+"\n"), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), fixed)
	return nil
}

func readMessage(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read commit message: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read commit message from stdin: %w", err)
	}
	return string(data), nil
}

// fixMessage runs the deterministic repair loop over raw and returns the
// rendered result. A message without a parseable header cannot be repaired
// and is returned unchanged, as is any message the loop gives up on.
func fixMessage(ctx context.Context, linter *lint.Linter, raw string, maxRetries int, opts ...validate.Option) (string, bool) {
	if linter.Lint(raw).Valid {
		return raw, true
	}
	msg, err := commit.ParseMessage(raw)
	if err != nil {
		return raw, false
	}
	fixed, ok := validate.New(linter, opts...).Execute(ctx, msg, validate.RunOptions{MaxRetries: maxRetries})
	if !ok {
		return raw, false
	}
	return fixed.String(), true
}

// report prints the lint findings and returns whether the message passed.
func report(w io.Writer, res lint.Result) bool {
	for _, e := range res.Errors {
		fmt.Fprintln(w, tui.Error(e))
	}
	for _, warning := range res.Warnings {
		fmt.Fprintln(w, tui.Warn(warning))
	}
	if res.Valid {
		fmt.Fprintln(w, tui.Success("commit message is valid"))
	}
	return res.Valid
}
