// Package tokenizer estimates prompt size in model tokens and trims staged
// diffs to a token budget.
package tokenizer

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TruncationMarker ends a diff cut to fit the budget.
const TruncationMarker = "... (diff truncated to fit token limit)"

const fallbackEncoding = "cl100k_base"

// Counter counts tokens with one encoding. The zero value estimates from
// the byte length.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// NewCounter picks the encoding for model, falling back to cl100k_base for
// models tiktoken does not know (Claude, Gemini, local models).
func NewCounter(model string) Counter {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return Counter{}
		}
	}
	return Counter{enc: enc}
}

// Count returns the token count of text.
func (c Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.enc == nil {
		// Roughly 3.5 bytes per token for English and code.
		return int(float64(len(text))/3.5) + 1
	}
	return len(c.enc.Encode(text, nil, nil))
}

// Truncate keeps whole lines of text while they fit in maxTokens and marks
// the cut. maxTokens <= 0 disables truncation.
func (c Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || c.Count(text) <= maxTokens {
		return text
	}

	budget := maxTokens - c.Count(TruncationMarker+"\n")
	var b strings.Builder
	used := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		n := c.Count(line)
		if used+n > budget {
			break
		}
		b.WriteString(line)
		used += n
	}
	out := b.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out + TruncationMarker
}

// DefaultLimit is a conservative input budget for provider and model.
func DefaultLimit(provider, model string) int {
	model = strings.ToLower(model)
	switch strings.ToLower(provider) {
	case "ollama":
		return 6000
	case "gemini":
		return 100000
	case "anthropic":
		return 100000
	case "openai":
		if strings.Contains(model, "gpt-3.5") {
			return 3000
		}
		return 60000
	}
	return 30000
}
