package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate cuts s to at most width terminal cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String()
}

func padRight(s string, width int) string {
	s = truncate(s, width)
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func padLeft(s string, width int) string {
	s = truncate(s, width)
	return strings.Repeat(" ", width-lipgloss.Width(s)) + s
}

func padCenter(s string, width int) string {
	s = truncate(s, width)
	total := width - lipgloss.Width(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
