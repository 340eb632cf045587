// Package prompt derives the generation context handed to the LLM from the
// commit-lint rule table and the prompt settings of the lint config file.
package prompt

import (
	"slices"

	"github.com/lieyanc/czai/internal/lint"
)

// RepairInstruction tells the model to keep the meaning and fix the format.
const RepairInstruction = "Fix only the format problems listed in the validation errors. " +
	"Preserve the meaning, type and scope of the previous attempt."

// TypeOption describes one commit type in the prompt settings.
type TypeOption struct {
	Value       string `yaml:"value" json:"value" toml:"value"`
	Description string `yaml:"description" json:"description" toml:"description"`
	Emoji       string `yaml:"emoji" json:"emoji" toml:"emoji"`
}

// Config is the "prompt" section of a commit-lint config file.
type Config struct {
	Types            []TypeOption `yaml:"types" json:"types" toml:"types"`
	Scopes           []string     `yaml:"scopes" json:"scopes" toml:"scopes"`
	ScopeDescription string       `yaml:"scope_description" json:"scopeDescription" toml:"scope_description"`
	UseEmoji         bool         `yaml:"use_emoji" json:"useEmoji" toml:"use_emoji"`
}

// TypeInfo is the description and emoji attached to a commit type.
type TypeInfo struct {
	Description string
	Emoji       string
}

// SubjectRules collects the subject constraints. Zero lengths mean unbounded.
type SubjectRules struct {
	MinLength int
	MaxLength int
	Required  bool
	// Case lists case names; CaseNever inverts them into forbidden cases.
	Case      []string
	CaseNever bool
	// FullStop is the forbidden (or, with FullStopRequired, mandatory) ending.
	FullStop         string
	FullStopRequired bool
}

// LengthRules bounds a single line. Zero means unbounded.
type LengthRules struct {
	MinLength int
	MaxLength int
}

// TextRules bounds a multi-line block.
type TextRules struct {
	MaxLength     int
	MaxLineLength int
	LeadingBlank  bool
}

// Repair carries the feedback of a failed validation into a regeneration.
type Repair struct {
	PreviousAttempt  string
	ValidationErrors []string
	Instruction      string
}

// Context is rebuilt for every generation cycle.
type Context struct {
	TypeEnum         []string
	TypeDescriptions map[string]TypeInfo
	TypeCase         []string
	ScopeEnum        []string
	ScopeCase        []string
	ScopeDescription string
	UseEmoji         bool

	Subject SubjectRules
	Header  LengthRules
	Body    TextRules
	Footer  TextRules

	Diff  string
	Files []string

	// Repair is set only when regenerating after validation errors.
	Repair *Repair
}

// Extract builds a Context from rules and cfg. It never fails: disabled,
// missing or malformed rules simply leave their field empty.
func Extract(rules lint.Rules, cfg Config) Context {
	ctx := Context{
		TypeDescriptions: make(map[string]TypeInfo, len(cfg.Types)),
		ScopeDescription: cfg.ScopeDescription,
		UseEmoji:         cfg.UseEmoji,
	}
	for _, t := range cfg.Types {
		if t.Value == "" {
			continue
		}
		ctx.TypeDescriptions[t.Value] = TypeInfo{Description: t.Description, Emoji: t.Emoji}
	}

	if r, ok := rules.Active("type-enum"); ok && r.Condition == lint.Always {
		if list, ok := lint.StringsValue(r.Value); ok {
			ctx.TypeEnum = slices.Clone(list)
		}
	}
	if r, ok := rules.Active("type-case"); ok && r.Condition == lint.Always {
		ctx.TypeCase = caseList(r.Value)
	}
	if r, ok := rules.Active("scope-enum"); ok && r.Condition == lint.Always {
		if list, ok := lint.StringsValue(r.Value); ok {
			ctx.ScopeEnum = slices.Clone(list)
		}
	}
	if len(ctx.ScopeEnum) == 0 && len(cfg.Scopes) > 0 {
		ctx.ScopeEnum = slices.Clone(cfg.Scopes)
	}
	if r, ok := rules.Active("scope-case"); ok && r.Condition == lint.Always {
		ctx.ScopeCase = caseList(r.Value)
	}

	if r, ok := rules.Active("subject-case"); ok {
		ctx.Subject.Case = caseList(r.Value)
		ctx.Subject.CaseNever = r.Condition == lint.Never
	}
	if r, ok := rules.Active("subject-empty"); ok {
		ctx.Subject.Required = r.Condition == lint.Never
	}
	if r, ok := rules.Active("subject-full-stop"); ok {
		if stop, ok := r.Value.(string); ok {
			ctx.Subject.FullStop = stop
			ctx.Subject.FullStopRequired = r.Condition == lint.Always
		}
	}
	ctx.Subject.MinLength = bound(rules, "subject-min-length")
	ctx.Subject.MaxLength = bound(rules, "subject-max-length")

	ctx.Header.MinLength = bound(rules, "header-min-length")
	ctx.Header.MaxLength = bound(rules, "header-max-length")

	ctx.Body.MaxLength = bound(rules, "body-max-length")
	ctx.Body.MaxLineLength = bound(rules, "body-max-line-length")
	ctx.Body.LeadingBlank = leadingBlank(rules, "body-leading-blank")

	ctx.Footer.MaxLineLength = bound(rules, "footer-max-line-length")
	ctx.Footer.LeadingBlank = leadingBlank(rules, "footer-leading-blank")

	return ctx
}

// ForRepair returns a reduced copy of c for a repair request: the diff and
// file list are dropped, the previous attempt and its errors are added.
func (c Context) ForRepair(previous string, errs []string) Context {
	reduced := c
	reduced.Diff = ""
	reduced.Files = nil
	reduced.Repair = &Repair{
		PreviousAttempt:  previous,
		ValidationErrors: slices.Clone(errs),
		Instruction:      RepairInstruction,
	}
	return reduced
}

// TypeChoices returns the allowed types, falling back to the configured
// descriptions and then to the conventional set.
func (c Context) TypeChoices() []string {
	if len(c.TypeEnum) > 0 {
		return c.TypeEnum
	}
	if len(c.TypeDescriptions) > 0 {
		types := make([]string, 0, len(c.TypeDescriptions))
		for t := range c.TypeDescriptions {
			types = append(types, t)
		}
		slices.Sort(types)
		return types
	}
	return DefaultTypes()
}

// Describe returns the description and emoji for typ, using the built-in
// conventional descriptions when none is configured.
func (c Context) Describe(typ string) TypeInfo {
	if info, ok := c.TypeDescriptions[typ]; ok && info.Description != "" {
		return info
	}
	return defaultDescriptions[typ]
}

func bound(rules lint.Rules, name string) int {
	r, ok := rules.Active(name)
	if !ok {
		return 0
	}
	n, ok := lint.IntValue(r.Value)
	if !ok || n < 0 {
		return 0
	}
	return n
}

func leadingBlank(rules lint.Rules, name string) bool {
	r, ok := rules.Active(name)
	return ok && r.Condition == lint.Always
}

func caseList(v any) []string {
	if s, ok := v.(string); ok {
		return []string{s}
	}
	if list, ok := lint.StringsValue(v); ok {
		return slices.Clone(list)
	}
	return nil
}
