package llm

import (
	"fmt"
	"strings"

	"github.com/lieyanc/czai/internal/prompt"
)

func languageName(lang string) string {
	switch lang {
	case "zh", "zh-CN", "zh-Hans":
		return "Simplified Chinese"
	case "zh-TW", "zh-Hant":
		return "Traditional Chinese"
	case "ja":
		return "Japanese"
	case "ko":
		return "Korean"
	case "es":
		return "Spanish"
	case "fr":
		return "French"
	case "de":
		return "German"
	case "ru":
		return "Russian"
	default:
		return "English"
	}
}

func buildSystemPrompt(pctx prompt.Context, lang string) string {
	var b strings.Builder

	b.WriteString(`You write Git commit messages following Conventional Commits 1.0.0.

Task:
1) Infer the primary intent of the change.
2) Map it to exactly one allowed commit type.
3) Write a short subject and, when useful, a body explaining why.

Allowed types:
`)
	for _, t := range pctx.TypeChoices() {
		info := pctx.Describe(t)
		line := "- " + t
		if info.Description != "" {
			line += ": " + info.Description
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\nRules:\n")
	for _, rule := range ruleLines(pctx) {
		b.WriteString("- " + rule + "\n")
	}
	fmt.Fprintf(&b, "- Write in %s\n", languageName(lang))

	b.WriteString(`
Output format (a single JSON object, no markdown, no extra text):
{"type": "<type>", "scope": "<optional scope>", "subject": "<subject>", "body": "<optional body>", "breaking": "<optional breaking change description>"}

Leave "scope", "body" and "breaking" empty when they do not apply.
Use "breaking" only for changes that break public behavior or contracts, and do not repeat the "BREAKING CHANGE:" prefix in it.`)

	return b.String()
}

func ruleLines(pctx prompt.Context) []string {
	var rules []string
	if len(pctx.ScopeEnum) > 0 {
		rules = append(rules, "Scope must be one of: "+strings.Join(pctx.ScopeEnum, ", "))
	} else {
		desc := "Scope is optional; include it only when a clear module/component exists"
		if pctx.ScopeDescription != "" {
			desc += " (" + pctx.ScopeDescription + ")"
		}
		rules = append(rules, desc)
	}
	if len(pctx.TypeCase) > 0 {
		rules = append(rules, "Type must be "+strings.Join(pctx.TypeCase, " or "))
	}

	s := pctx.Subject
	rules = append(rules, "Subject must be imperative and concise")
	if len(s.Case) > 0 {
		verb := "must be"
		if s.CaseNever {
			verb = "must not be"
		}
		rules = append(rules, fmt.Sprintf("Subject %s %s", verb, strings.Join(s.Case, ", ")))
	}
	if s.FullStop != "" {
		if s.FullStopRequired {
			rules = append(rules, fmt.Sprintf("Subject must end with %q", s.FullStop))
		} else {
			rules = append(rules, fmt.Sprintf("Subject must not end with %q", s.FullStop))
		}
	}
	if s.MinLength > 0 {
		rules = append(rules, fmt.Sprintf("Subject must be at least %d characters", s.MinLength))
	}
	if s.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("Subject must be at most %d characters", s.MaxLength))
	}
	if pctx.Header.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("The full header \"type(scope): subject\" must be at most %d characters", pctx.Header.MaxLength))
	}
	if pctx.Header.MinLength > 0 {
		rules = append(rules, fmt.Sprintf("The full header must be at least %d characters", pctx.Header.MinLength))
	}
	if pctx.Body.MaxLineLength > 0 {
		rules = append(rules, fmt.Sprintf("Wrap body lines at %d characters", pctx.Body.MaxLineLength))
	}
	if pctx.Body.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("Body must be at most %d characters", pctx.Body.MaxLength))
	}
	if pctx.Footer.MaxLineLength > 0 {
		rules = append(rules, fmt.Sprintf("Wrap the breaking change description at %d characters", pctx.Footer.MaxLineLength))
	}
	return rules
}

func buildUserPrompt(pctx prompt.Context) string {
	if r := pctx.Repair; r != nil {
		var b strings.Builder
		b.WriteString("The previous commit message failed validation.\n\nPrevious attempt:\n")
		b.WriteString(r.PreviousAttempt)
		b.WriteString("\n\nValidation errors:\n")
		for _, e := range r.ValidationErrors {
			b.WriteString("- " + e + "\n")
		}
		b.WriteString("\n" + r.Instruction + "\n")
		b.WriteString("Return the corrected message in the required JSON format.")
		return b.String()
	}

	var b strings.Builder
	b.WriteString("Analyze these staged changes and write one Conventional Commit message.\n")
	b.WriteString("First, silently determine the primary change type using the allowed types.\n")
	b.WriteString("Then output only the JSON object.\n")
	if len(pctx.Files) > 0 {
		b.WriteString("\nStaged files:\n")
		for _, f := range pctx.Files {
			b.WriteString("- " + f + "\n")
		}
	}
	b.WriteString("\nGit diff:\n")
	b.WriteString(pctx.Diff)
	return b.String()
}
