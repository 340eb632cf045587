package git

import (
	"context"
	"strings"
	"unicode/utf8"
)

// DefaultMaxDiffChars bounds the diff handed to the model.
const DefaultMaxDiffChars = 3000

// TruncationMarker ends a diff cut at the character limit.
const TruncationMarker = "... (diff truncated)"

// StagedDiff returns the staged diff, cut to maxChars runes when maxChars is
// positive.
func (r *Repo) StagedDiff(ctx context.Context, maxChars int) (string, error) {
	out, err := r.run(ctx, "", "diff", "--cached")
	if err != nil {
		return "", err
	}
	return truncateDiff(out, maxChars), nil
}

// StagedFiles lists the paths in the index that differ from HEAD.
func (r *Repo) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "", "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// DiffStat returns the short stat summary of the staged diff.
func (r *Repo) DiffStat(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "", "diff", "--cached", "--stat")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func truncateDiff(diff string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(diff) <= maxChars {
		return diff
	}
	runes := []rune(diff)
	return string(runes[:maxChars]) + "\n" + TruncationMarker
}

func splitLines(out string) []string {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
