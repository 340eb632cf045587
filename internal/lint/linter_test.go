package lint

import (
	"slices"
	"strings"
	"testing"
)

func TestParseRuleIgnoresMalformedShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		ok   bool
	}{
		{name: "full tuple", raw: []any{2, "always", 72}, ok: true},
		{name: "json float severity", raw: []any{float64(1), "never"}, ok: true},
		{name: "toml int64 severity", raw: []any{int64(0), "always"}, ok: true},
		{name: "not a list", raw: "error", ok: false},
		{name: "empty list", raw: []any{}, ok: false},
		{name: "too long", raw: []any{2, "always", 1, 2}, ok: false},
		{name: "bad severity", raw: []any{3, "always"}, ok: false},
		{name: "bad condition", raw: []any{2, "sometimes"}, ok: false},
		{name: "fractional severity", raw: []any{1.5, "always"}, ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, ok := ParseRule(tc.raw)
			if ok != tc.ok {
				t.Fatalf("ParseRule(%v) ok got %v want %v", tc.raw, ok, tc.ok)
			}
		})
	}
}

func TestLintConventionalDefaults(t *testing.T) {
	t.Parallel()

	l := New(ConventionalRules())
	tests := []struct {
		name     string
		raw      string
		valid    bool
		contains string
	}{
		{name: "valid", raw: "feat(api): add endpoint", valid: true},
		{name: "empty type", raw: ": y", contains: "type may not be empty"},
		{name: "empty subject", raw: "feat: ", contains: "subject may not be empty"},
		{name: "sentence case", raw: "fix: Handle nil pointer", contains: "subject must not be sentence-case"},
		{name: "period", raw: "fix: handle nil pointer.", contains: "subject may not end with period"},
		{name: "unknown type", raw: "feature: add x", contains: "type must be one of [build, chore"},
		{name: "upper type", raw: "FEAT: add x", contains: "type must be lower-case"},
		{
			name:     "long header",
			raw:      "feat: " + strings.Repeat("x", 100),
			contains: "header must not be longer than 100 characters, current length is 106",
		},
		{
			name:     "long body line",
			raw:      "feat: add x\n\n" + strings.Repeat("word ", 30),
			contains: "body's lines must not be longer than 100 characters",
		},
		{
			name:     "long footer line",
			raw:      "feat: add x\n\nBREAKING CHANGE: " + strings.Repeat("b", 100),
			contains: "footer's lines must not be longer than 100 characters",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res := l.Lint(tc.raw)
			if res.Valid != tc.valid {
				t.Fatalf("Valid got %v want %v (errors %v)", res.Valid, tc.valid, res.Errors)
			}
			if tc.contains == "" {
				return
			}
			found := slices.ContainsFunc(res.Errors, func(e string) bool {
				return strings.Contains(e, tc.contains)
			})
			if !found {
				t.Fatalf("errors %v missing %q", res.Errors, tc.contains)
			}
		})
	}
}

func TestLintWarningsDoNotInvalidate(t *testing.T) {
	t.Parallel()

	res := New(ConventionalRules()).Lint("feat: add x\nbody without blank line")
	if !res.Valid {
		t.Fatalf("warnings should not invalidate, errors %v", res.Errors)
	}
	if !slices.Contains(res.Warnings, "body must have leading blank line") {
		t.Fatalf("warnings got %v", res.Warnings)
	}
}

func TestLintSkipsDisabledAndUnknownRules(t *testing.T) {
	t.Parallel()

	rules := Rules{
		"type-enum":         {Severity: Disabled, Condition: Always, Value: []any{"feat"}},
		"no-such-rule":      {Severity: Error, Condition: Always},
		"subject-empty":     {Severity: Error, Condition: Never},
		"header-max-length": {Severity: Error, Condition: Always, Value: "seventy"},
	}
	res := New(rules).Lint("chore: " + strings.Repeat("x", 200))
	if !res.Valid {
		t.Fatalf("expected valid, errors %v", res.Errors)
	}
}
