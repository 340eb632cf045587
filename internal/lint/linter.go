package lint

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lieyanc/czai/internal/commit"
)

// Result is the outcome of one lint run.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Linter applies a fixed rule set.
type Linter struct {
	rules Rules
}

// New returns a Linter for rules. A nil rule set lints nothing.
func New(rules Rules) *Linter {
	return &Linter{rules: rules}
}

type check func(p commit.Parsed, rule Rule) (ok bool, message string)

var checks = map[string]check{
	"type-empty":             emptyCheck("type", func(p commit.Parsed) string { return p.Type }),
	"subject-empty":          emptyCheck("subject", func(p commit.Parsed) string { return p.Subject }),
	"scope-empty":            emptyCheck("scope", func(p commit.Parsed) string { return p.Scope }),
	"type-enum":              enumCheck("type", func(p commit.Parsed) string { return p.Type }),
	"scope-enum":             enumCheck("scope", func(p commit.Parsed) string { return p.Scope }),
	"type-case":              caseCheck("type", func(p commit.Parsed) string { return p.Type }),
	"scope-case":             caseCheck("scope", func(p commit.Parsed) string { return p.Scope }),
	"subject-case":           caseCheck("subject", func(p commit.Parsed) string { return p.Subject }),
	"subject-full-stop":      checkSubjectFullStop,
	"subject-max-length":     maxLengthCheck("subject", func(p commit.Parsed) string { return p.Subject }),
	"subject-min-length":     minLengthCheck("subject", func(p commit.Parsed) string { return p.Subject }),
	"header-max-length":      checkHeaderMaxLength,
	"header-min-length":      minLengthCheck("header", func(p commit.Parsed) string { return p.Header }),
	"body-max-length":        maxLengthCheck("body", func(p commit.Parsed) string { return p.Body }),
	"body-min-length":        minLengthCheck("body", func(p commit.Parsed) string { return p.Body }),
	"body-max-line-length":   lineLengthCheck("body's", func(p commit.Parsed) string { return p.Body }),
	"footer-max-line-length": lineLengthCheck("footer's", func(p commit.Parsed) string { return p.Footer }),
	"body-leading-blank":     checkBodyLeadingBlank,
	"footer-leading-blank":   checkFooterLeadingBlank,
}

// Lint parses raw and evaluates every active rule against it. Unknown rule
// names are ignored.
func (l *Linter) Lint(raw string) Result {
	p := commit.Parse(raw)
	res := Result{}
	for _, name := range l.rules.Names() {
		rule, ok := l.rules.Active(name)
		if !ok {
			continue
		}
		fn, ok := checks[name]
		if !ok {
			continue
		}
		if passed, msg := fn(p, rule); !passed {
			if rule.Severity == Error {
				res.Errors = append(res.Errors, msg)
			} else {
				res.Warnings = append(res.Warnings, msg)
			}
		}
	}
	res.Valid = len(res.Errors) == 0
	return res
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}

func emptyCheck(field string, get func(commit.Parsed) string) check {
	return func(p commit.Parsed, rule Rule) (bool, string) {
		empty := strings.TrimSpace(get(p)) == ""
		if rule.Condition == Never {
			return !empty, field + " may not be empty"
		}
		return empty, field + " must be empty"
	}
}

func enumCheck(field string, get func(commit.Parsed) string) check {
	return func(p commit.Parsed, rule Rule) (bool, string) {
		value := get(p)
		allowed, ok := StringsValue(rule.Value)
		if value == "" || !ok {
			return true, ""
		}
		in := slices.Contains(allowed, value)
		list := "[" + strings.Join(allowed, ", ") + "]"
		if rule.Condition == Never {
			return !in, fmt.Sprintf("%s must not be one of %s", field, list)
		}
		return in, fmt.Sprintf("%s must be one of %s", field, list)
	}
}

func caseCheck(field string, get func(commit.Parsed) string) check {
	return func(p commit.Parsed, rule Rule) (bool, string) {
		value := get(p)
		names := caseNames(rule.Value)
		if value == "" || len(names) == 0 {
			return true, ""
		}
		matched := false
		for _, name := range names {
			if matchesCase(value, name) {
				matched = true
				break
			}
		}
		list := strings.Join(names, ", ")
		if rule.Condition == Never {
			return !matched, fmt.Sprintf("%s must not be %s", field, list)
		}
		return matched, fmt.Sprintf("%s must be %s", field, list)
	}
}

func checkSubjectFullStop(p commit.Parsed, rule Rule) (bool, string) {
	stop, ok := rule.Value.(string)
	if !ok || stop == "" {
		stop = "."
	}
	if p.Subject == "" {
		return true, ""
	}
	name := "full stop " + stop
	if stop == "." {
		name = "period"
	}
	ends := strings.HasSuffix(p.Subject, stop)
	if rule.Condition == Never {
		return !ends, "subject may not end with " + name
	}
	return ends, "subject must end with " + name
}

func maxLengthCheck(field string, get func(commit.Parsed) string) check {
	return func(p commit.Parsed, rule Rule) (bool, string) {
		limit, ok := IntValue(rule.Value)
		value := get(p)
		if !ok || value == "" {
			return true, ""
		}
		return length(value) <= limit, fmt.Sprintf("%s must not be longer than %d characters", field, limit)
	}
}

func minLengthCheck(field string, get func(commit.Parsed) string) check {
	return func(p commit.Parsed, rule Rule) (bool, string) {
		limit, ok := IntValue(rule.Value)
		value := get(p)
		if !ok || value == "" {
			return true, ""
		}
		return length(value) >= limit, fmt.Sprintf("%s must not be shorter than %d characters", field, limit)
	}
}

func checkHeaderMaxLength(p commit.Parsed, rule Rule) (bool, string) {
	limit, ok := IntValue(rule.Value)
	if !ok {
		return true, ""
	}
	n := length(p.Header)
	return n <= limit, fmt.Sprintf("header must not be longer than %d characters, current length is %d", limit, n)
}

func lineLengthCheck(field string, get func(commit.Parsed) string) check {
	return func(p commit.Parsed, rule Rule) (bool, string) {
		limit, ok := IntValue(rule.Value)
		if !ok {
			return true, ""
		}
		for _, line := range strings.Split(get(p), "\n") {
			if length(line) > limit {
				return false, fmt.Sprintf("%s lines must not be longer than %d characters", field, limit)
			}
		}
		return true, ""
	}
}

func checkBodyLeadingBlank(p commit.Parsed, rule Rule) (bool, string) {
	if p.Body == "" && p.Footer == "" {
		return true, ""
	}
	if rule.Condition == Never {
		return !p.BodyLeadingBlank, "body may not have leading blank line"
	}
	return p.BodyLeadingBlank, "body must have leading blank line"
}

func checkFooterLeadingBlank(p commit.Parsed, rule Rule) (bool, string) {
	if p.Footer == "" {
		return true, ""
	}
	if rule.Condition == Never {
		return !p.FooterLeadingBlank, "footer may not have leading blank line"
	}
	return p.FooterLeadingBlank, "footer must have leading blank line"
}
