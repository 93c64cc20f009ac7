package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// Tab represents a single tab in the tab bar. Tabs are selected with the
// number keys, so each label carries its 1-based position.
type Tab struct {
	Name string
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview"},
	{Name: "Records"},
	{Name: "Industries"},
	{Name: "Cities"},
	{Name: "Growth"},
	{Name: "Investors"},
	{Name: "Forecast"},
}

func tabLabel(i int) (key, name string) {
	return strconv.Itoa(i + 1), Tabs[i].Name
}

// TabVisualWidth is the rendered width of tab i, padding included.
func TabVisualWidth(i int) int {
	key, name := tabLabel(i)
	return lipgloss.Width(key) + lipgloss.Width(name) + 3
}

// TabBarWidth is the width of the full tab row without trailing fill.
func TabBarWidth() int {
	w := 0
	for i := range Tabs {
		w += TabVisualWidth(i)
	}
	return w + len(Tabs) - 1
}

// RenderTabBar renders a single row of tabs with the given active index,
// filled to width.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)
	keyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)
	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	parts := make([]string, 0, len(Tabs))
	for i := range Tabs {
		key, name := tabLabel(i)
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(" "+key+" "+name+" "))
			continue
		}
		parts = append(parts,
			inactiveStyle.Render(" ")+keyStyle.Render(key)+inactiveStyle.Render(" "+name+" "))
	}

	row := strings.Join(parts, sepStyle.Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabAtX returns the tab index at column x, or -1 if none.
func TabAtX(x int) int {
	pos := 0
	for i := range Tabs {
		w := TabVisualWidth(i)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
