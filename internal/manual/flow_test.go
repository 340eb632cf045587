package manual

import (
	"errors"
	"testing"

	"github.com/lieyanc/czai/internal/commit"
	"github.com/lieyanc/czai/internal/interact"
	"github.com/lieyanc/czai/internal/prompt"
)

// scriptedPrompter answers prompts in order from fixed queues.
type scriptedPrompter struct {
	t        *testing.T
	selects  []string
	texts    []string
	confirms []bool

	selectChoices [][]interact.Choice
	textDefaults  []string
	cancelOnText  int
	textCalls     int
}

func (p *scriptedPrompter) Select(title string, choices []interact.Choice, def string) (string, error) {
	p.selectChoices = append(p.selectChoices, choices)
	if len(p.selects) == 0 {
		p.t.Fatalf("unexpected Select %q", title)
	}
	v := p.selects[0]
	p.selects = p.selects[1:]
	return v, nil
}

func (p *scriptedPrompter) Text(title, hint, def string, validate func(string) error) (string, error) {
	p.textCalls++
	if p.cancelOnText == p.textCalls {
		return "", interact.ErrCancelled
	}
	p.textDefaults = append(p.textDefaults, def)
	if len(p.texts) == 0 {
		p.t.Fatalf("unexpected Text %q", title)
	}
	v := p.texts[0]
	p.texts = p.texts[1:]
	if validate != nil {
		if err := validate(v); err != nil {
			p.t.Fatalf("scripted answer %q for %q rejected: %v", v, title, err)
		}
	}
	return v, nil
}

func (p *scriptedPrompter) Confirm(title string, def bool) (bool, error) {
	if len(p.confirms) == 0 {
		p.t.Fatalf("unexpected Confirm %q", title)
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *scriptedPrompter) Password(string) (string, error) {
	p.t.Fatalf("unexpected Password prompt")
	return "", nil
}

type recordingPrinter struct {
	previews []string
}

func (r *recordingPrinter) Notice(string) {}

func (r *recordingPrinter) Preview(_, message string) {
	r.previews = append(r.previews, message)
}

func TestExecuteBuildsMessage(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{
		t:        t,
		selects:  []string{"feat"},
		texts:    []string{"api", "add health endpoint", "Exposes /healthz.", "old probe removed"},
		confirms: []bool{true, true},
	}
	printer := &recordingPrinter{}

	msg, err := New(p, printer).Execute(prompt.Context{TypeEnum: []string{"feat", "fix"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "feat(api): add health endpoint\n\nBREAKING CHANGE: old probe removed\n\nExposes /healthz."
	if msg.String() != want {
		t.Fatalf("message got %q want %q", msg.String(), want)
	}
	if len(printer.previews) != 1 || printer.previews[0] != want {
		t.Fatalf("previews got %v", printer.previews)
	}
	if got := p.selectChoices[0][0].Label; got != "feat: A new feature ✨" {
		t.Fatalf("type label got %q", got)
	}
}

func TestExecuteRestartsAfterRejection(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{
		t:       t,
		selects: []string{"fix", "fix"},
		texts: []string{
			"", "handle nil map", "",
			"core", "handle nil map in loader", "",
		},
		// breaking, reject, breaking, accept
		confirms: []bool{false, false, false, true},
	}

	msg, err := New(p, &recordingPrinter{}).Execute(prompt.Context{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if msg.String() != "fix(core): handle nil map in loader" {
		t.Fatalf("message got %q", msg.String())
	}
	// The second round is prefilled with the rejected message.
	if p.textDefaults[4] != "handle nil map" {
		t.Fatalf("second round subject default got %q want %q", p.textDefaults[4], "handle nil map")
	}
}

func TestEditPrefillsFromSeed(t *testing.T) {
	t.Parallel()

	h, _ := commit.NewHeader("docs", "update readme", "cli")
	seed := commit.New(h, commit.NewBody("More words.", ""))
	p := &scriptedPrompter{
		t:        t,
		selects:  []string{"docs"},
		texts:    []string{"cli", "update readme", "More words."},
		confirms: []bool{false, true},
	}

	msg, err := New(p, &recordingPrinter{}).Edit(prompt.Context{}, seed)
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !msg.Equal(seed) {
		t.Fatalf("message got %q want %q", msg.String(), seed.String())
	}
	want := []string{"cli", "update readme", "More words."}
	for i, d := range want {
		if p.textDefaults[i] != d {
			t.Fatalf("default %d got %q want %q", i, p.textDefaults[i], d)
		}
	}
}

func TestExecutePropagatesCancel(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{t: t, selects: []string{"feat"}, texts: []string{""}, cancelOnText: 2}
	_, err := New(p, &recordingPrinter{}).Execute(prompt.Context{})
	if !errors.Is(err, interact.ErrCancelled) {
		t.Fatalf("error got %v want ErrCancelled", err)
	}
}

func TestScopeEnumUsesSelect(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{
		t:        t,
		selects:  []string{"feat", ""},
		texts:    []string{"add login", ""},
		confirms: []bool{false, true},
	}
	msg, err := New(p, &recordingPrinter{}).Execute(prompt.Context{ScopeEnum: []string{"web", "api"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if msg.String() != "feat: add login" {
		t.Fatalf("message got %q", msg.String())
	}
	if n := len(p.selectChoices[1]); n != 3 {
		t.Fatalf("scope choices got %d want 3", n)
	}
}

func TestSubjectValidator(t *testing.T) {
	t.Parallel()

	validate := subjectValidator(prompt.SubjectRules{MinLength: 3, MaxLength: 10})
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "ab", wantErr: true},
		{in: "add x", wantErr: false},
		{in: "much too long subject", wantErr: true},
	}
	for _, tc := range tests {
		if err := validate(tc.in); (err != nil) != tc.wantErr {
			t.Fatalf("validate(%q) error got %v want error=%v", tc.in, err, tc.wantErr)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	t.Parallel()

	pctx := prompt.Context{TypeDescriptions: map[string]prompt.TypeInfo{
		"wip": {Description: "Work in progress"},
	}}
	if got := TypeLabel(pctx, "wip"); got != "wip: Work in progress" {
		t.Fatalf("label got %q", got)
	}
	if got := TypeLabel(pctx, "unknown"); got != "unknown" {
		t.Fatalf("label got %q", got)
	}
}
