package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// ShareBar renders pct (0 to 1) as a filled bar followed by a percentage,
// used for a slice's share of the total.
func ShareBar(pct float64, width int) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)
	filled := int(pct * float64(width))

	barColor := t.Blue
	if pct >= 0.25 {
		barColor = t.Accent
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	b.WriteString(pctStyle.Render(fmt.Sprintf(" %5.1f%%", pct*100)))
	return b.String()
}
