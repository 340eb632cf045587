package lint

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// matchesCase reports whether s is written in the named commitlint case.
// Unknown case names never match.
func matchesCase(s, name string) bool {
	if s == "" {
		return true
	}
	switch name {
	case "lower-case", "lowercase":
		return s == strings.ToLower(s)
	case "upper-case", "uppercase":
		return s == strings.ToUpper(s)
	case "sentence-case", "sentencecase":
		return startsUpper(s)
	case "start-case", "startcase":
		for _, word := range strings.Fields(s) {
			if !startsUpper(word) {
				return false
			}
		}
		return true
	case "pascal-case", "pascalcase":
		return startsUpper(s) && !strings.ContainsAny(s, " -_")
	case "camel-case", "camelcase":
		return !startsUpper(s) && !strings.ContainsAny(s, " -_")
	case "kebab-case", "kebabcase":
		return s == strings.ToLower(s) && !strings.ContainsAny(s, " _")
	case "snake-case", "snakecase":
		return s == strings.ToLower(s) && !strings.ContainsAny(s, " -")
	}
	return false
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// caseNames accepts either a single case name or a list of them.
func caseNames(v any) []string {
	if s, ok := v.(string); ok {
		return []string{s}
	}
	if list, ok := StringsValue(v); ok {
		return list
	}
	return nil
}
