// Package manual builds a commit message from step-by-step user input.
package manual

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/interact"
	"github.com/lieyanc/czai/internal/prompt"
)

const noScope = ""

// Flow asks for type, scope, subject, body and breaking change, previews the
// result and repeats until the user accepts it.
type Flow struct {
	prompter interact.Prompter
	printer  interact.Printer
	logger   zerolog.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithLogger sets the logger for the flow.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// New returns a Flow using prompter for input and printer for the preview.
func New(prompter interact.Prompter, printer interact.Printer, opts ...Option) *Flow {
	f := &Flow{prompter: prompter, printer: printer, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Execute runs the flow with empty defaults.
func (f *Flow) Execute(pctx prompt.Context) (commit.Message, error) {
	return f.Edit(pctx, commit.Message{})
}

// Edit runs the flow with every prompt prefilled from seed. A zero seed
// leaves the prompts empty.
func (f *Flow) Edit(pctx prompt.Context, seed commit.Message) (commit.Message, error) {
	for round := 1; ; round++ {
		msg, err := f.collect(pctx, seed)
		if err != nil {
			return commit.Message{}, err
		}

		f.printer.Preview("Commit message", msg.String())
		ok, err := f.prompter.Confirm("Use this commit message?", true)
		if err != nil {
			return commit.Message{}, err
		}
		if ok {
			return msg, nil
		}
		f.logger.Debug().Int("round", round).Msg("manual message rejected, restarting")
		seed = msg
	}
}

func (f *Flow) collect(pctx prompt.Context, seed commit.Message) (commit.Message, error) {
	h, b := seed.Header(), seed.Body()

	typ, err := f.prompter.Select("Select the type of change", typeChoices(pctx), h.Type())
	if err != nil {
		return commit.Message{}, err
	}

	scope, err := f.askScope(pctx, h.Scope())
	if err != nil {
		return commit.Message{}, err
	}

	subject, err := f.prompter.Text("Write a short description", subjectHint(pctx.Subject), h.Subject(), subjectValidator(pctx.Subject))
	if err != nil {
		return commit.Message{}, err
	}

	content, err := f.prompter.Text("Provide a longer description (optional)", "", b.Content(), nil)
	if err != nil {
		return commit.Message{}, err
	}

	breaking := ""
	isBreaking, err := f.prompter.Confirm("Are there any breaking changes?", seed.HasBreakingChange())
	if err != nil {
		return commit.Message{}, err
	}
	if isBreaking {
		breaking, err = f.prompter.Text("Describe the breaking change", "", b.BreakingChange(), required("breaking change description"))
		if err != nil {
			return commit.Message{}, err
		}
	}

	header, err := commit.NewHeader(typ, subject, scope)
	if err != nil {
		return commit.Message{}, fmt.Errorf("build header: %w", err)
	}
	// A "!" on the seed survives as long as the change is still breaking.
	header = header.WithBang(isBreaking && seed.Header().Bang())
	return commit.New(header, commit.NewBody(content, breaking)), nil
}

func (f *Flow) askScope(pctx prompt.Context, def string) (string, error) {
	if len(pctx.ScopeEnum) == 0 {
		hint := pctx.ScopeDescription
		if hint == "" {
			hint = "optional, press enter to skip"
		}
		return f.prompter.Text("What is the scope of this change?", hint, def, nil)
	}

	choices := []interact.Choice{{Label: "(none)", Value: noScope}}
	for _, s := range pctx.ScopeEnum {
		choices = append(choices, interact.Choice{Label: s, Value: s})
	}
	return f.prompter.Select("What is the scope of this change?", choices, def)
}

func typeChoices(pctx prompt.Context) []interact.Choice {
	types := pctx.TypeChoices()
	choices := make([]interact.Choice, 0, len(types))
	for _, t := range types {
		choices = append(choices, interact.Choice{Label: TypeLabel(pctx, t), Value: t})
	}
	return choices
}

// TypeLabel renders "type: description emoji", omitting missing parts.
func TypeLabel(pctx prompt.Context, typ string) string {
	info := pctx.Describe(typ)
	label := typ
	if info.Description != "" {
		label += ": " + info.Description
	}
	if info.Emoji != "" {
		label += " " + info.Emoji
	}
	return label
}

func subjectHint(rules prompt.SubjectRules) string {
	switch {
	case rules.MinLength > 0 && rules.MaxLength > 0:
		return fmt.Sprintf("%d-%d characters", rules.MinLength, rules.MaxLength)
	case rules.MaxLength > 0:
		return fmt.Sprintf("at most %d characters", rules.MaxLength)
	case rules.MinLength > 0:
		return fmt.Sprintf("at least %d characters", rules.MinLength)
	}
	return ""
}

var errRequired = errors.New("required")

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is %w", field, errRequired)
		}
		return nil
	}
}

func subjectValidator(rules prompt.SubjectRules) func(string) error {
	return func(s string) error {
		if err := required("subject")(s); err != nil {
			return err
		}
		n := utf8.RuneCountInString(strings.TrimSpace(s))
		if rules.MinLength > 0 && n < rules.MinLength {
			return fmt.Errorf("subject must be at least %d characters, got %d", rules.MinLength, n)
		}
		if rules.MaxLength > 0 && n > rules.MaxLength {
			return fmt.Errorf("subject must be at most %d characters, got %d", rules.MaxLength, n)
		}
		return nil
	}
}
