package git

import "context"

// StageAll stages every change in the work tree.
func (r *Repo) StageAll(ctx context.Context) error {
	_, err := r.run(ctx, "", "add", "-A")
	return err
}

// Commit records the index with message. The message is read from stdin so
// multi-paragraph bodies survive unchanged; only surrounding whitespace is
// cleaned, so lines starting with '#' are kept.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.run(ctx, message, "commit", "--cleanup=whitespace", "-F", "-")
	return err
}
