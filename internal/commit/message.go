// Package commit holds the immutable conventional-commit value types.
package commit

import (
	"errors"
	"fmt"
	"strings"
)

// BreakingPrefix starts the breaking-change block of a commit body.
const BreakingPrefix = "BREAKING CHANGE:"

// ErrInvalidHeader is matched by every InvalidHeaderError.
var ErrInvalidHeader = errors.New("invalid commit header")

// InvalidHeaderError reports which required header field was empty.
type InvalidHeaderError struct {
	Field string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid commit header: %s may not be empty", e.Field)
}

func (e *InvalidHeaderError) Is(target error) bool {
	return target == ErrInvalidHeader
}

// Header is the first line of a commit message.
type Header struct {
	typ     string
	subject string
	scope   string
	// bang marks a breaking change with "!" before the colon.
	bang bool
}

// NewHeader trims its arguments and rejects an empty type or subject.
func NewHeader(typ, subject, scope string) (Header, error) {
	typ = strings.TrimSpace(typ)
	subject = strings.TrimSpace(subject)
	scope = strings.TrimSpace(scope)
	if typ == "" {
		return Header{}, &InvalidHeaderError{Field: "type"}
	}
	if subject == "" {
		return Header{}, &InvalidHeaderError{Field: "subject"}
	}
	return Header{typ: typ, subject: subject, scope: scope}, nil
}

func (h Header) Type() string    { return h.typ }
func (h Header) Subject() string { return h.subject }
func (h Header) Scope() string   { return h.scope }
func (h Header) Bang() bool      { return h.bang }

// WithSubject returns a copy of h with a different subject.
func (h Header) WithSubject(subject string) (Header, error) {
	next, err := NewHeader(h.typ, subject, h.scope)
	if err != nil {
		return Header{}, err
	}
	return next.WithBang(h.bang), nil
}

// WithBang returns a copy of h with the "!" marker set or cleared.
func (h Header) WithBang(bang bool) Header {
	h.bang = bang
	return h
}

// String renders "type(scope)!: subject", omitting the scope and the "!"
// when absent.
func (h Header) String() string {
	var b strings.Builder
	b.WriteString(h.typ)
	if h.scope != "" {
		b.WriteString("(" + h.scope + ")")
	}
	if h.bang {
		b.WriteByte('!')
	}
	b.WriteString(": " + h.subject)
	return b.String()
}

// Body is the optional free text and breaking-change note.
type Body struct {
	content  string
	breaking string
}

// NewBody trims both parts. Either may be empty.
func NewBody(content, breaking string) Body {
	return Body{
		content:  strings.TrimSpace(content),
		breaking: strings.TrimSpace(breaking),
	}
}

func (b Body) Content() string        { return b.content }
func (b Body) BreakingChange() string { return b.breaking }

// IsEmpty reports whether both parts are absent.
func (b Body) IsEmpty() bool {
	return b.content == "" && b.breaking == ""
}

// String puts the breaking-change block before the content, separated by a
// blank line.
func (b Body) String() string {
	var parts []string
	if b.breaking != "" {
		parts = append(parts, BreakingPrefix+" "+b.breaking)
	}
	if b.content != "" {
		parts = append(parts, b.content)
	}
	return strings.Join(parts, "\n\n")
}

// Message is a complete commit message.
type Message struct {
	header Header
	body   Body
}

// New combines a header and a body.
func New(header Header, body Body) Message {
	return Message{header: header, body: body}
}

func (m Message) Header() Header { return m.header }
func (m Message) Body() Body     { return m.body }

// WithHeader returns a copy of m with h as its header.
func (m Message) WithHeader(h Header) Message {
	return Message{header: h, body: m.body}
}

// WithBody returns a copy of m with b as its body.
func (m Message) WithBody(b Body) Message {
	return Message{header: m.header, body: b}
}

// HasBreakingChange reports whether the header carries "!" or the body a
// breaking-change note.
func (m Message) HasBreakingChange() bool {
	return m.header.bang || m.body.breaking != ""
}

// String renders the header, a blank line, then the body when present.
func (m Message) String() string {
	if m.body.IsEmpty() {
		return m.header.String()
	}
	return m.header.String() + "\n\n" + m.body.String()
}

// Equal compares header and body field by field.
func (m Message) Equal(other Message) bool {
	return m.header == other.header && m.body == other.body
}
