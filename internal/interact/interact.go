// Package interact defines the prompt surface the commit flows talk to.
package interact

import (
	"context"
	"errors"
)

// ErrCancelled is returned by every prompt the user aborts. Callers must
// propagate it unchanged.
var ErrCancelled = errors.New("cancelled by user")

// Choice is one option of a Select prompt.
type Choice struct {
	Label string
	Value string
}

// Prompter asks the user for input.
type Prompter interface {
	Select(title string, choices []Choice, def string) (string, error)
	Text(title, hint, def string, validate func(string) error) (string, error)
	Confirm(title string, def bool) (bool, error)
	Password(title string) (string, error)
}

// Printer shows non-interactive output between prompts.
type Printer interface {
	Notice(msg string)
	Preview(title, message string)
}

// Task is long-running work shown behind a progress indicator. status
// replaces the line under the title and may be called from any goroutine.
type Task func(ctx context.Context, status func(string)) error

// Progress runs a Task while showing that work is in progress.
type Progress interface {
	Run(ctx context.Context, title string, task Task) error
}
