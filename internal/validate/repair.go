package validate

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/lint"
	"github.com/lieyanc/czai/internal/llm"
	"github.com/lieyanc/czai/internal/prompt"
)

const ellipsis = "..."

// Regenerator performs one generation attempt. *llm.Gateway satisfies it.
type Regenerator interface {
	GenerateOnce(ctx context.Context, pctx prompt.Context, cfg llm.Configuration) (commit.Message, error)
}

// Repairer fixes invalid messages, first by asking the model for a
// corrected version and then with deterministic text edits.
type Repairer struct {
	linter Linter
	regen  Regenerator
	cfg    llm.Configuration
	logger zerolog.Logger
}

// RepairOption configures a Repairer.
type RepairOption func(*Repairer)

// WithRegenerator enables the model-guided repair path with cfg.
func WithRegenerator(regen Regenerator, cfg llm.Configuration) RepairOption {
	return func(r *Repairer) {
		r.regen = regen
		r.cfg = cfg
	}
}

// WithRepairLogger sets the logger for the repairer.
func WithRepairLogger(logger zerolog.Logger) RepairOption {
	return func(r *Repairer) {
		r.logger = logger
	}
}

// NewRepairer returns a Repairer that revalidates its fixes with linter.
func NewRepairer(linter Linter, opts ...RepairOption) *Repairer {
	r := &Repairer{linter: linter, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fix implements Fixer.
func (r *Repairer) Fix(ctx context.Context, msg commit.Message, res lint.Result, pctx *prompt.Context) (commit.Message, bool) {
	if r.regen != nil && pctx != nil {
		reduced := pctx.ForRepair(msg.String(), res.Errors)
		regenerated, err := r.regen.GenerateOnce(ctx, reduced, r.cfg)
		switch {
		case err != nil:
			r.logger.Warn().Err(err).Msg("model repair failed, falling back to text fixes")
		case r.linter.Lint(regenerated.String()).Valid:
			return regenerated, true
		default:
			r.logger.Debug().Msg("model repair still invalid, falling back to text fixes")
		}
	}

	patched, ok := applyTextFixes(msg, res.Errors)
	if !ok {
		return commit.Message{}, false
	}
	after := r.linter.Lint(patched.String())
	if after.Valid {
		return patched, true
	}

	// One follow-up pass covers errors introduced by the first one, such as
	// a truncated subject now ending in a full stop.
	patched, ok = applyTextFixes(patched, after.Errors)
	if !ok || !r.linter.Lint(patched.String()).Valid {
		return commit.Message{}, false
	}
	return patched, true
}

var firstInt = regexp.MustCompile(`\d+`)

// applyTextFixes patches msg once per recognised error. It reports false
// when an error cannot be fixed by editing text.
func applyTextFixes(msg commit.Message, errs []string) (commit.Message, bool) {
	for _, e := range errs {
		if strings.Contains(e, "subject may not be empty") || strings.Contains(e, "type may not be empty") {
			return commit.Message{}, false
		}
	}

	current := msg
	for _, e := range errs {
		switch {
		case strings.Contains(e, "subject must not be sentence-case"):
			current = editSubject(current, lowerFirst)
		case strings.Contains(e, "subject may not end with period"):
			current = editSubject(current, stripPeriod)
		case strings.Contains(e, "header must not be longer than"):
			if n, ok := boundIn(e); ok {
				current = truncateHeader(current, n)
			}
		case strings.Contains(e, "body's lines must not be longer than"),
			strings.Contains(e, "footer's lines must not be longer than"):
			if n, ok := boundIn(e); ok {
				current = wrapBody(current, n)
			}
		}
	}
	return current, true
}

func boundIn(e string) (int, bool) {
	m := firstInt.FindString(e)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// editSubject applies fn to the subject; edits that would empty it are
// dropped.
func editSubject(msg commit.Message, fn func(string) string) commit.Message {
	h, err := msg.Header().WithSubject(fn(msg.Header().Subject()))
	if err != nil {
		return msg
	}
	return msg.WithHeader(h)
}

// stripPeriod drops one trailing period. A truncation ellipsis becomes a
// single ellipsis rune instead.
func stripPeriod(s string) string {
	if strings.HasSuffix(s, ellipsis) {
		return strings.TrimSuffix(s, ellipsis) + "\u2026"
	}
	return strings.TrimSuffix(s, ".")
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// truncateHeader shortens the subject so the rendered header is exactly
// limit runes, ending in an ellipsis.
func truncateHeader(msg commit.Message, limit int) commit.Message {
	length := utf8.RuneCountInString(msg.Header().String())
	overhang := length - limit
	if overhang <= 0 {
		return msg
	}
	subject := []rune(msg.Header().Subject())
	keep := len(subject) - (overhang + len(ellipsis))
	if keep <= 0 {
		return msg
	}
	return editSubject(msg, func(string) string {
		return string(subject[:keep]) + ellipsis
	})
}

func wrapBody(msg commit.Message, width int) commit.Message {
	body := msg.Body()
	content := wrapParagraphs(body.Content(), width)

	breaking := wrapBreaking(body.BreakingChange(), width)
	return msg.WithBody(commit.NewBody(content, breaking))
}

// wrapBreaking wraps breaking-change text whose first line is rendered after
// the "BREAKING CHANGE: " prefix. The first word always stays on that line.
func wrapBreaking(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	first := width - utf8.RuneCountInString(commit.BreakingPrefix) - 1
	head := words[0]
	headLen := utf8.RuneCountInString(head)
	rest := words[1:]
	for len(rest) > 0 && headLen+1+utf8.RuneCountInString(rest[0]) <= first {
		head += " " + rest[0]
		headLen += 1 + utf8.RuneCountInString(rest[0])
		rest = rest[1:]
	}
	lines := append([]string{head}, wrap(strings.Join(rest, " "), width)...)
	return strings.Join(lines, "\n")
}

func wrapParagraphs(text string, width int) string {
	if text == "" {
		return ""
	}
	paragraphs := strings.Split(text, "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = strings.Join(wrap(p, width), "\n")
	}
	return strings.Join(paragraphs, "\n\n")
}

// wrap packs words greedily into lines of at most width runes. A single
// word longer than width gets a line of its own.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+wordLen+1 > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wordLen
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
