package commit

import (
	"regexp"
	"strings"
)

var headerPattern = regexp.MustCompile(`^(\w[\w-]*)(?:\(([^()]*)\))?(!)?: ?(.*)$`)

// Parsed is the loose structure of a raw commit message. Unlike Message it
// tolerates missing fields so that a linter can report them.
type Parsed struct {
	Header  string
	Type    string
	Scope   string
	Subject string
	// Bang is set when the header carries "!" before the colon.
	Bang bool

	// Body is the free text between the header and the footer.
	Body string
	// Footer holds the breaking-change block and anything after it.
	Footer string
	// BreakingChange is the footer text after the BREAKING CHANGE: prefix.
	BreakingChange string

	BodyLeadingBlank   bool
	FooterLeadingBlank bool
}

type paragraph struct {
	lines       []string
	blankBefore bool
}

// Parse splits a raw commit message into header, body and footer. Lines
// starting with '#' are treated as git comments and dropped.
func Parse(raw string) Parsed {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	for len(kept) > 0 && kept[len(kept)-1] == "" {
		kept = kept[:len(kept)-1]
	}
	for len(kept) > 0 && kept[0] == "" {
		kept = kept[1:]
	}

	var p Parsed
	if len(kept) == 0 {
		return p
	}

	p.Header = kept[0]
	if m := headerPattern.FindStringSubmatch(p.Header); m != nil {
		p.Type = m[1]
		p.Scope = m[2]
		p.Bang = m[3] == "!"
		p.Subject = strings.TrimSpace(m[4])
	}

	rest := kept[1:]
	p.BodyLeadingBlank = len(rest) == 0 || rest[0] == ""

	var (
		paragraphs []paragraph
		current    *paragraph
		blank      bool
	)
	for _, line := range rest {
		if line == "" {
			current = nil
			blank = true
			continue
		}
		// A breaking-change line always opens a new paragraph.
		if current == nil || strings.HasPrefix(line, BreakingPrefix) {
			paragraphs = append(paragraphs, paragraph{blankBefore: blank})
			current = &paragraphs[len(paragraphs)-1]
		}
		current.lines = append(current.lines, line)
		blank = false
	}

	footerAt := -1
	for i, para := range paragraphs {
		if strings.HasPrefix(para.lines[0], BreakingPrefix) {
			footerAt = i
			break
		}
	}

	var bodyParts, footerParts []string
	for i, para := range paragraphs {
		text := strings.Join(para.lines, "\n")
		if i == footerAt {
			p.FooterLeadingBlank = para.blankBefore
			p.BreakingChange = strings.TrimSpace(strings.TrimPrefix(text, BreakingPrefix))
			footerParts = append(footerParts, text)
			continue
		}
		// Paragraphs after the breaking block are free text too: Body.String
		// renders the breaking block first.
		bodyParts = append(bodyParts, text)
	}
	p.Body = strings.Join(bodyParts, "\n\n")
	p.Footer = strings.Join(footerParts, "\n\n")
	return p
}

// Message converts the parsed fields into a validated Message.
func (p Parsed) Message() (Message, error) {
	h, err := NewHeader(p.Type, p.Subject, p.Scope)
	if err != nil {
		return Message{}, err
	}
	return New(h.WithBang(p.Bang), NewBody(p.Body, p.BreakingChange)), nil
}

// ParseMessage parses raw and builds a Message from it.
func ParseMessage(raw string) (Message, error) {
	return Parse(raw).Message()
}
