package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	fallbackContentWidth = 72
	minContentWidth      = 32
)

// contentWidth is the usable width inside a box on a terminal of the given
// width; 0 means unknown.
func contentWidth(termWidth int) int {
	if termWidth <= 0 {
		return fallbackContentWidth
	}
	width := termWidth - boxStyle.GetHorizontalFrameSize() - 2
	if width < minContentWidth {
		return minContentWidth
	}
	return width
}

func renderBox(content string, termWidth int) string {
	style := boxStyle
	if termWidth > 2 {
		style = style.MaxWidth(termWidth - 2)
	}
	return style.Render(content)
}

// RenderMessage draws a titled box around a commit message for preview.
func RenderMessage(title, message string, termWidth int) string {
	width := contentWidth(termWidth)
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		style := messageStyle
		if i == 0 {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(wrapText(line, width)))
	}
	return renderBox(b.String(), termWidth)
}

// wrapText breaks each line of text between words so that no line is wider
// than width display cells. Words wider than width are split.
func wrapText(text string, width int) string {
	if width <= 0 || text == "" {
		return text
	}
	lines := strings.Split(strings.ReplaceAll(text, "\t", " "), "\n")
	for i, line := range lines {
		lines[i] = wrapLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func wrapLine(line string, width int) string {
	var out []string
	cur, curWidth := "", 0
	for _, word := range strings.Fields(line) {
		for lipgloss.Width(word) > width {
			if cur != "" {
				out = append(out, cur)
				cur, curWidth = "", 0
			}
			head, rest := splitAtWidth(word, width)
			out = append(out, head)
			word = rest
		}
		w := lipgloss.Width(word)
		switch {
		case cur == "":
			cur, curWidth = word, w
		case curWidth+1+w <= width:
			cur += " " + word
			curWidth += 1 + w
		default:
			out = append(out, cur)
			cur, curWidth = word, w
		}
	}
	if cur != "" || len(out) == 0 {
		out = append(out, cur)
	}
	return strings.Join(out, "\n")
}

// splitAtWidth returns the longest prefix of s that fits in width cells,
// but always at least one rune.
func splitAtWidth(s string, width int) (string, string) {
	used := 0
	for i, r := range s {
		rw := lipgloss.Width(string(r))
		if used+rw > width && i > 0 {
			return s[:i], s[i:]
		}
		used += rw
	}
	return s, ""
}
