package git

import (
	"context"
	"errors"
)

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	return r.quietDiff(ctx, "diff", "--cached", "--quiet")
}

// HasUnstagedChanges reports whether the work tree differs from the index.
func (r *Repo) HasUnstagedChanges(ctx context.Context) (bool, error) {
	return r.quietDiff(ctx, "diff", "--quiet")
}

// HasUntrackedFiles reports whether there are untracked, non-ignored files.
func (r *Repo) HasUntrackedFiles(ctx context.Context) (bool, error) {
	out, err := r.run(ctx, "", "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return false, err
	}
	return len(splitLines(out)) > 0, nil
}

// quietDiff maps git's --quiet exit status 1 to "has changes".
func (r *Repo) quietDiff(ctx context.Context, args ...string) (bool, error) {
	_, err := r.run(ctx, "", args...)
	if err == nil {
		return false, nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}
