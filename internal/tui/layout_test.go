package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestWrapTextHonorsWidth(t *testing.T) {
	t.Parallel()

	got := wrapText("feat(api): add endpoint with robust validation rules", 12)
	for _, line := range strings.Split(got, "\n") {
		if lipgloss.Width(line) > 12 {
			t.Fatalf("line %q exceeds width 12", line)
		}
	}
}

func TestContentWidthFallbackAndMin(t *testing.T) {
	t.Parallel()

	if got := contentWidth(0); got != fallbackContentWidth {
		t.Fatalf("fallback width got %d want %d", got, fallbackContentWidth)
	}
	if got := contentWidth(8); got != minContentWidth {
		t.Fatalf("min width got %d want %d", got, minContentWidth)
	}
}

func TestRenderMessageKeepsEveryLine(t *testing.T) {
	t.Parallel()

	msg := "feat(api): add endpoint\n\nBREAKING CHANGE: v1 removed"
	got := RenderMessage("Commit message", msg, 80)
	for _, want := range []string{"Commit message", "feat(api): add endpoint", "BREAKING CHANGE: v1 removed"} {
		if !strings.Contains(got, want) {
			t.Fatalf("rendered box missing %q:\n%s", want, got)
		}
	}
}

func TestSpinnerModelFinishesWithTaskResult(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	m := newSpinnerModel("Generating", func() {}, nil)

	next, _ := m.Update(statusMsg("retrying (1/3)"))
	m = next.(spinnerModel)
	if m.status != "retrying (1/3)" || !strings.Contains(m.View(), "retrying (1/3)") {
		t.Fatalf("status not shown: %q", m.View())
	}

	next, cmd := m.Update(taskDoneMsg{err: boom})
	m = next.(spinnerModel)
	if !m.done || !errors.Is(m.err, boom) {
		t.Fatalf("done=%v err=%v", m.done, m.err)
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSpinnerModelCancelOnCtrlC(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	m := newSpinnerModel("Generating", cancel, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(spinnerModel)
	if !m.cancelled {
		t.Fatalf("ctrl+c should cancel")
	}
	if ctx.Err() == nil {
		t.Fatalf("task context not cancelled")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestSpinnerRunWithoutTerminal(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	s := &Spinner{out: &out}
	err := s.Run(context.Background(), "Generating", func(ctx context.Context, status func(string)) error {
		status("attempt 1 failed")
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "attempt 1 failed") {
		t.Fatalf("status line not written: %q", out.String())
	}
}

func TestWrapTextBreaksBetweenWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{name: "fits", text: "add endpoint", width: 20, want: "add endpoint"},
		{name: "word boundary", text: "add endpoint with rules", width: 12, want: "add endpoint\nwith rules"},
		{name: "long word split", text: "a abcdefghij", width: 4, want: "a\nabcd\nefgh\nij"},
		{name: "keeps newlines", text: "one\n\ntwo", width: 10, want: "one\n\ntwo"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := wrapText(tc.text, tc.width); got != tc.want {
				t.Fatalf("wrapText(%q, %d) got %q want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}
