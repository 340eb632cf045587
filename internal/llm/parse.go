package llm

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/lieyanc/czai/internal/commit"
)

type responseJSON struct {
	Type     string `json:"type"`
	Scope    string `json:"scope"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Breaking any    `json:"breaking"`
}

// ParseResponse turns an LLM reply into a commit message. It accepts a JSON
// object (optionally surrounded by prose or a code fence) or a plain-text
// conventional commit.
func ParseResponse(raw string) (commit.Message, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return commit.Message{}, &MalformedResponseError{Reason: "empty response", Response: raw}
	}

	if obj := extractJSON(text); obj != "" {
		var resp responseJSON
		if err := json.Unmarshal([]byte(obj), &resp); err == nil {
			return resp.message(raw)
		}
	}

	msg, err := parseText(text)
	if err != nil {
		return commit.Message{}, &MalformedResponseError{Reason: err.Error(), Response: raw}
	}
	return msg, nil
}

func (r responseJSON) message(raw string) (commit.Message, error) {
	typ := strings.TrimSpace(r.Type)
	bang := strings.HasSuffix(typ, "!")
	h, err := commit.NewHeader(strings.TrimSuffix(typ, "!"), r.Subject, r.Scope)
	if err != nil {
		return commit.Message{}, &MalformedResponseError{Reason: err.Error(), Response: raw}
	}
	var breaking string
	switch v := r.Breaking.(type) {
	case string:
		breaking = stripBreakingPrefix(v)
	case bool:
		// "breaking": true with no description keeps only the marker.
		bang = bang || v
	}
	return commit.New(h.WithBang(bang), commit.NewBody(r.Body, breaking)), nil
}

func stripBreakingPrefix(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{commit.BreakingPrefix, "BREAKING-CHANGE:"} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimSpace(s[len(prefix):])
		}
	}
	return s
}

// extractJSON returns the first balanced {...} object in text, skipping
// braces inside string literals.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// parseText finds the first conventional header line and treats everything
// after it as the body.
func parseText(text string) (commit.Message, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		header := strings.Trim(stripPrefix(line), "`\"'")
		p := commit.Parse(header)
		if p.Type == "" || p.Subject == "" {
			continue
		}

		rest := strings.Join(lines[i+1:], "\n")
		rest = strings.TrimSuffix(strings.TrimSpace(rest), "```")
		return commit.Parse(header + "\n\n" + strings.TrimSpace(rest)).Message()
	}
	return commit.Message{}, errNoHeader
}

var errNoHeader = errors.New("no conventional commit header found")

func stripPrefix(s string) string {
	// Strip numbered list: "1. ", "2) ", etc.
	for i, c := range s {
		if c >= '0' && c <= '9' {
			continue
		}
		if (c == '.' || c == ')') && i > 0 {
			return strings.TrimSpace(s[i+1:])
		}
		break
	}
	// Strip bullet: "- ", "* "
	if len(s) > 2 && (s[0] == '-' || s[0] == '*') && s[1] == ' ' {
		return strings.TrimSpace(s[2:])
	}
	return s
}
