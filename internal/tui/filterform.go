package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// filterValues are the form-bound copies of the three selectors. App is a
// value type, so the form binds to a heap copy shared by every App copy.
type filterValues struct {
	industry string
	city     string
	year     string
}

func (a App) openFilterForm() (tea.Model, tea.Cmd) {
	v := &filterValues{
		industry: a.industry.value(),
		city:     a.city.value(),
		year:     a.year.value(),
	}
	a.filterVals = v

	a.filterForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Industry").
				Options(huh.NewOptions(a.industry.options...)...).
				Height(8).
				Value(&v.industry),
			huh.NewSelect[string]().
				Title("City").
				Options(huh.NewOptions(a.city.options...)...).
				Height(8).
				Value(&v.city),
			huh.NewSelect[string]().
				Title("Year").
				Options(huh.NewOptions(a.year.options...)...).
				Value(&v.year),
		),
	).WithTheme(huh.ThemeCharm()).
		WithShowHelp(true).
		WithWidth(min(a.width, 70))

	return a, a.filterForm.Init()
}

func (a App) updateFilterForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		a.filterForm = nil
		return a, nil
	}

	m, cmd := a.filterForm.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.filterForm = f
	}

	switch a.filterForm.State {
	case huh.StateCompleted:
		a.industry.set(a.filterVals.industry)
		a.city.set(a.filterVals.city)
		a.year.set(a.filterVals.year)
		a.filterForm = nil
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.filterForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) viewFilterForm() string {
	t := theme.Active
	title := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("◈ Filters")
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("enter to apply · esc to cancel")
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", a.filterForm.View(), hint)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderBright).
		Padding(1, 2).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}
