// Package git wraps the git command line for the commit flow.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Repo runs git in Dir. An empty Dir means the process working directory.
type Repo struct {
	Dir string
}

// Open returns a Repo rooted at dir.
func Open(dir string) *Repo {
	return &Repo{Dir: dir}
}

// CommandError is a failed git invocation with its combined output.
type CommandError struct {
	Args   []string
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	msg := e.Output
	if msg == "" {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the git exit status, or -1 when git did not run.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

func (r *Repo) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	return cmd
}

func (r *Repo) run(ctx context.Context, stdin string, args ...string) (string, error) {
	cmd := r.command(ctx, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		out := strings.TrimSpace(stderr.String())
		if out == "" {
			out = strings.TrimSpace(stdout.String())
		}
		return "", &CommandError{Args: args, Output: out, Err: err}
	}
	return stdout.String(), nil
}

// IsRepo reports whether Dir is inside a git work tree.
func (r *Repo) IsRepo(ctx context.Context) bool {
	return r.command(ctx, "rev-parse", "--is-inside-work-tree").Run() == nil
}

// Root returns the top-level directory of the work tree.
func (r *Repo) Root(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "", "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
