package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"

	"github.com/lieyanc/czai/internal/interact"
)

// Prompter implements interact.Prompter and interact.Printer with huh forms
// and lipgloss output.
type Prompter struct {
	out io.Writer
}

// NewPrompter writes notices and previews to out.
func NewPrompter(out io.Writer) *Prompter {
	return &Prompter{out: out}
}

func runField(f huh.Field) error {
	err := huh.NewForm(huh.NewGroup(f)).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return interact.ErrCancelled
	}
	return err
}

func (p *Prompter) Select(title string, choices []interact.Choice, def string) (string, error) {
	options := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		options[i] = huh.NewOption(c.Label, c.Value)
	}
	value := def
	field := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&value)
	if err := runField(field); err != nil {
		return "", err
	}
	return value, nil
}

func (p *Prompter) Text(title, hint, def string, validate func(string) error) (string, error) {
	value := def
	field := huh.NewInput().
		Title(title).
		Description(hint).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}
	if err := runField(field); err != nil {
		return "", err
	}
	return value, nil
}

func (p *Prompter) Confirm(title string, def bool) (bool, error) {
	value := def
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&value)
	if err := runField(field); err != nil {
		return false, err
	}
	return value, nil
}

func (p *Prompter) Password(title string) (string, error) {
	var value string
	field := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("a value is required")
			}
			return nil
		})
	if err := runField(field); err != nil {
		return "", err
	}
	return value, nil
}

// Notice prints a styled one-line message.
func (p *Prompter) Notice(msg string) {
	fmt.Fprintln(p.out, Warn(msg))
}

// Preview prints message in a titled box.
func (p *Prompter) Preview(title, message string) {
	fmt.Fprintln(p.out, RenderMessage(title, message, 0))
}
