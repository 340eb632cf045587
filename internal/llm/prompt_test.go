package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/lieyanc/czai/internal/prompt"
)

func TestBuildSystemPromptIncludesRuleConstraints(t *testing.T) {
	t.Parallel()

	pctx := prompt.Context{
		TypeEnum: []string{"feat", "fix"},
		TypeDescriptions: map[string]prompt.TypeInfo{
			"feat": {Description: "A shiny feature"},
		},
		Subject: prompt.SubjectRules{MaxLength: 50, Case: []string{"sentence-case"}, CaseNever: true, FullStop: "."},
		Header:  prompt.LengthRules{MaxLength: 72},
		Body:    prompt.TextRules{MaxLineLength: 100},
	}
	got := buildSystemPrompt(pctx, "en")
	required := []string{
		"- feat: A shiny feature",
		"- fix: A bug fix",
		"Subject must not be sentence-case",
		`Subject must not end with "."`,
		"Subject must be at most 50 characters",
		"must be at most 72 characters",
		"Wrap body lines at 100 characters",
		`"breaking"`,
	}
	for _, r := range required {
		if !strings.Contains(got, r) {
			t.Fatalf("system prompt missing %q", r)
		}
	}
	if strings.Contains(got, "- docs") {
		t.Fatalf("system prompt lists a type outside the enum")
	}
}

func TestBuildSystemPromptLanguageMapping(t *testing.T) {
	t.Parallel()

	got := buildSystemPrompt(prompt.Context{}, "zh")
	if !strings.Contains(got, "Write in Simplified Chinese") {
		t.Fatalf("expected simplified Chinese instruction, got: %q", got)
	}
}

func TestBuildUserPromptIncludesDiffAndFiles(t *testing.T) {
	t.Parallel()

	diff := "diff --git a/main.go b/main.go\n+func main() {}"
	got := buildUserPrompt(prompt.Context{Diff: diff, Files: []string{"main.go"}})

	if !strings.Contains(got, "silently determine the primary change type") {
		t.Fatalf("user prompt missing classification instruction")
	}
	if !strings.Contains(got, "- main.go") {
		t.Fatalf("user prompt missing staged files")
	}
	if !strings.Contains(got, diff) {
		t.Fatalf("user prompt missing injected diff")
	}
}

func TestBuildUserPromptForRepair(t *testing.T) {
	t.Parallel()

	pctx := prompt.Context{Diff: "secret diff"}.ForRepair("feat: Add x.", []string{"subject may not end with period"})
	got := buildUserPrompt(pctx)

	for _, want := range []string{"feat: Add x.", "- subject may not end with period", prompt.RepairInstruction} {
		if !strings.Contains(got, want) {
			t.Fatalf("repair prompt missing %q", want)
		}
	}
	if strings.Contains(got, "secret diff") {
		t.Fatalf("repair prompt must not include the diff")
	}
}

func TestParseResponse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json",
			in:   `{"type":"feat","scope":"api","subject":"add endpoint","body":"","breaking":""}`,
			want: "feat(api): add endpoint",
		},
		{
			name: "json in fence with prose",
			in:   "Here you go:\n```json\n{\"type\": \"fix\", \"subject\": \"handle {braces}\", \"body\": \"Details.\"}\n```",
			want: "fix: handle {braces}\n\nDetails.",
		},
		{
			name: "json breaking prefix stripped",
			in:   `{"type":"feat","subject":"drop v1","breaking":"BREAKING CHANGE: v1 is gone"}`,
			want: "feat: drop v1\n\nBREAKING CHANGE: v1 is gone",
		},
		{
			name: "json boolean breaking keeps marker",
			in:   `{"type":"feat","subject":"drop v1","breaking":true}`,
			want: "feat!: drop v1",
		},
		{
			name: "json bang type",
			in:   `{"type":"feat!","scope":"api","subject":"drop v1"}`,
			want: "feat(api)!: drop v1",
		},
		{
			name: "plain text bang",
			in:   "feat!: drop the legacy endpoint",
			want: "feat!: drop the legacy endpoint",
		},
		{
			name: "plain text",
			in:   "refactor(core): split service layer\n\nMoves handlers.\n\nBREAKING CHANGE: constructors changed",
			want: "refactor(core): split service layer\n\nBREAKING CHANGE: constructors changed\n\nMoves handlers.",
		},
		{
			name: "numbered plain text",
			in:   "1. chore: bump version",
			want: "chore: bump version",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			msg, err := ParseResponse(tc.in)
			if err != nil {
				t.Fatalf("ParseResponse: %v", err)
			}
			if got := msg.String(); got != tc.want {
				t.Fatalf("ParseResponse() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseResponseMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "  \n\t", "I could not understand the diff.", `{"type":"feat","subject":""}`} {
		_, err := ParseResponse(in)
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			t.Fatalf("ParseResponse(%q) error got %v want MalformedResponseError", in, err)
		}
	}
}
