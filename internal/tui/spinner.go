package tui

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lieyanc/czai/internal/interact"
)

type taskDoneMsg struct{ err error }

type statusMsg string

type spinnerModel struct {
	spinner spinner.Model
	title   string
	status  string
	width   int

	done      bool
	cancelled bool
	err       error

	cancel context.CancelFunc
	run    tea.Cmd
}

func newSpinnerModel(title string, cancel context.CancelFunc, run tea.Cmd) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s, title: title, cancel: cancel, run: run}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.CtrlC) || key.Matches(msg, keys.Quit) {
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	width := contentWidth(m.width)
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteByte(' ')
	b.WriteString(m.title)
	if m.status != "" {
		b.WriteString("\n  ")
		b.WriteString(warnStyle.Render(wrapText(m.status, width-2)))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  q cancel"))
	b.WriteString("\n")
	return b.String()
}

// Spinner runs tasks behind an animated status line.
type Spinner struct {
	out         io.Writer
	interactive bool
}

// NewSpinner draws on out. On a non-interactive stdin the task runs without
// animation and status lines are written as plain text.
func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{out: out, interactive: stdinIsTerminal()}
}

// Run executes task, returning interact.ErrCancelled when the user aborts.
func (s *Spinner) Run(ctx context.Context, title string, task interact.Task) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !s.interactive {
		return task(ctx, func(line string) {
			io.WriteString(s.out, Warn(line)+"\n")
		})
	}

	var p *tea.Program
	status := func(line string) {
		p.Send(statusMsg(line))
	}
	run := func() tea.Msg {
		return taskDoneMsg{err: task(ctx, status)}
	}
	p = tea.NewProgram(newSpinnerModel(title, cancel, run), tea.WithOutput(s.out))

	final, err := p.Run()
	if m, ok := final.(spinnerModel); ok {
		if m.cancelled {
			return interact.ErrCancelled
		}
		if m.done {
			return m.err
		}
	}
	return err
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
