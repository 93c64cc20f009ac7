package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with key hints on the left
// and info on the right. A non-empty warning replaces the info.
func RenderStatusBar(width int, info, warning string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var left strings.Builder
	for _, h := range []struct{ key, desc string }{
		{"?", "help"}, {"f", "filter"}, {"0", "reset"}, {"q", "quit"},
	} {
		left.WriteString(base.Render(" ["))
		left.WriteString(keyStyle.Render(h.key))
		left.WriteString(base.Render("]" + h.desc))
	}

	room := width - lipgloss.Width(left.String()) - 2
	right := base.Render(clip(info, room) + " ")
	if warning != "" {
		right = lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render(clip(warning, room) + " ")
	}

	gap := width - lipgloss.Width(left.String()) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left.String() + base.Render(strings.Repeat(" ", gap)) + right
}

// clip cuts s to at most n runes, marking the cut with an ellipsis.
func clip(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
