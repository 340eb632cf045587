// Package lint checks rendered commit messages against commitlint-style
// rules.
package lint

import (
	"math"
	"sort"
)

// Severity is the first element of a rule tuple.
type Severity int

const (
	Disabled Severity = 0
	Warning  Severity = 1
	Error    Severity = 2
)

// Condition is the second element of a rule tuple.
type Condition string

const (
	Always Condition = "always"
	Never  Condition = "never"
)

// Rule is a decoded [severity, condition, value?] tuple.
type Rule struct {
	Severity  Severity
	Condition Condition
	Value     any
}

// Rules maps rule names such as "header-max-length" to their settings.
type Rules map[string]Rule

// Active returns the named rule unless it is missing or disabled.
func (r Rules) Active(name string) (Rule, bool) {
	rule, ok := r[name]
	if !ok || rule.Severity == Disabled {
		return Rule{}, false
	}
	return rule, true
}

// Names returns the rule names in a stable order.
func (r Rules) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseRule decodes one rule tuple. Shapes that do not look like a rule are
// reported with ok=false instead of an error.
func ParseRule(raw any) (Rule, bool) {
	tuple, ok := raw.([]any)
	if !ok || len(tuple) < 1 || len(tuple) > 3 {
		return Rule{}, false
	}
	level, ok := IntValue(tuple[0])
	if !ok || level < int(Disabled) || level > int(Error) {
		return Rule{}, false
	}
	rule := Rule{Severity: Severity(level), Condition: Always}
	if len(tuple) >= 2 {
		cond, ok := tuple[1].(string)
		if !ok || (Condition(cond) != Always && Condition(cond) != Never) {
			return Rule{}, false
		}
		rule.Condition = Condition(cond)
	}
	if len(tuple) == 3 {
		rule.Value = tuple[2]
	}
	return rule, true
}

// RulesFromRaw decodes a rule table as read from YAML, JSON or TOML, skipping
// malformed entries.
func RulesFromRaw(raw map[string]any) Rules {
	rules := make(Rules, len(raw))
	for name, v := range raw {
		if rule, ok := ParseRule(v); ok {
			rules[name] = rule
		}
	}
	return rules
}

// IntValue accepts the integer shapes produced by the supported decoders.
func IntValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// StringsValue accepts a list whose elements are all strings.
func StringsValue(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return list, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// ConventionalRules mirrors @commitlint/config-conventional.
func ConventionalRules() Rules {
	return Rules{
		"body-leading-blank":     {Severity: Warning, Condition: Always},
		"body-max-line-length":   {Severity: Error, Condition: Always, Value: 100},
		"footer-leading-blank":   {Severity: Warning, Condition: Always},
		"footer-max-line-length": {Severity: Error, Condition: Always, Value: 100},
		"header-max-length":      {Severity: Error, Condition: Always, Value: 100},
		"subject-case": {Severity: Error, Condition: Never, Value: []any{
			"sentence-case", "start-case", "pascal-case", "upper-case",
		}},
		"subject-empty":     {Severity: Error, Condition: Never},
		"subject-full-stop": {Severity: Error, Condition: Never, Value: "."},
		"type-case":         {Severity: Error, Condition: Always, Value: "lower-case"},
		"type-empty":        {Severity: Error, Condition: Never},
		"type-enum": {Severity: Error, Condition: Always, Value: []any{
			"build", "chore", "ci", "docs", "feat", "fix", "perf", "refactor", "revert", "style", "test",
		}},
	}
}
