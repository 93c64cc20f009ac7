// Package tui provides the interactive Bubble Tea dashboard for fundboard.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/pipeline"
	"github.com/theirongolddev/fundboard/internal/tui/components"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// DataLoadedMsg is sent when the background load finishes, successfully or not.
type DataLoadedMsg struct {
	Result *pipeline.LoadResult
}

const (
	tabOverview = iota
	tabRecords
	tabIndustries
	tabCities
	tabGrowth
	tabInvestors
	tabForecast
)

const (
	minTerminalWidth = 90
	maxContentWidth  = 180
	minContentHeight = 5

	// Rows per ranked list on the Cities and Investors tabs.
	rankLimit = 15
)

// selector tracks the chosen position within one filter option list. Index
// zero is always pipeline.AllOption.
type selector struct {
	options []string
	idx     int
}

func (s selector) value() string {
	if s.idx <= 0 || s.idx >= len(s.options) {
		return pipeline.AllOption
	}
	return s.options[s.idx]
}

func (s *selector) step(delta int) {
	n := len(s.options)
	if n == 0 {
		return
	}
	s.idx = ((s.idx+delta)%n + n) % n
}

// set selects v, falling back to All when v is not an option.
func (s *selector) set(v string) {
	s.idx = 0
	for i, o := range s.options {
		if o == v {
			s.idx = i
			return
		}
	}
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	path    string
	result  *pipeline.LoadResult
	full    model.Dataset
	loaded  bool
	warning string
	horizon int

	// Filter state
	industry selector
	city     selector
	year     selector
	criteria pipeline.Criteria

	// Pre-computed for current filter
	filtered   model.Dataset
	summary    model.SummaryStats
	industries []model.IndustryStats
	cities     []model.CityStats
	years      []model.YearStats
	investors  []model.InvestorStats
	daily      []model.DailyPoint

	// Unfiltered, computed once per load
	prediction  forecast.Result
	forecastErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	recCursor int

	filterForm *huh.Form
	filterVals *filterValues

	// Loading
	spinner spinner.Model
	loadSub chan tea.Msg

	// Initial selection from flags, applied once options are known.
	initial [3]string
}

// NewApp creates a new TUI app model for the funding file at path.
func NewApp(path string, horizon int, industry, city, year string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if horizon <= 0 {
		horizon = forecast.DefaultHorizon
	}
	return App{
		path:    path,
		horizon: horizon,
		spinner: sp,
		loadSub: make(chan tea.Msg, 1),
		initial: [3]string{industry, city, year},
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.path, a.loadSub),
		a.spinner.Tick,
	)
}

// applyLoad installs a finished load and derives everything that does not
// depend on the filter.
func (a *App) applyLoad(res *pipeline.LoadResult) {
	a.result = res
	a.full = res.Dataset
	a.loaded = true
	a.warning = res.Warning()

	opts := pipeline.Options(a.full)
	a.industry = selector{options: opts.Industries}
	a.city = selector{options: opts.Cities}
	a.year = selector{options: opts.Years}
	a.industry.set(a.initial[0])
	a.city.set(a.initial[1])
	a.year.set(a.initial[2])

	a.prediction, a.forecastErr = forecast.LinearTrend{}.Forecast(pipeline.AggregateDaily(a.full), a.horizon)
	a.recompute()
}

// recompute re-filters the cached dataset and refreshes every aggregate.
func (a *App) recompute() {
	c, err := pipeline.ParseCriteria(a.industry.value(), a.city.value(), a.year.value())
	if err != nil {
		// Year options are generated from parsed years, so this only
		// happens if the option list is corrupted; fall back to no filter.
		c = pipeline.Criteria{}
	}
	a.criteria = c
	a.filtered = pipeline.Filter(a.full, c)

	a.summary = pipeline.Summarize(a.filtered)
	a.industries = pipeline.AggregateIndustries(a.filtered)
	a.cities = pipeline.AggregateCities(a.filtered, 0)
	a.years = pipeline.AggregateYears(a.filtered)
	a.investors = pipeline.AggregateInvestors(a.filtered, 0)
	a.daily = pipeline.AggregateDaily(a.filtered)

	if a.recCursor >= a.filtered.Len() {
		a.recCursor = max(0, a.filtered.Len()-1)
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.filterForm != nil {
			a.filterForm = a.filterForm.WithWidth(min(msg.Width, 70))
		}
		return a, nil

	case DataLoadedMsg:
		a.applyLoad(msg.Result)
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.filterForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.filterForm != nil {
			return a.updateFilterForm(msg)
		}
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the filter form (cursor blinks, etc.)
	if a.filterForm != nil {
		return a.updateFilterForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabRecords && a.recCursor > 0 {
			a.recCursor--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabRecords && a.recCursor < a.filtered.Len()-1 {
			a.recCursor++
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "i", "I", "c", "C", "y", "Y":
		delta := 1
		if strings.ToUpper(key) == key {
			delta = -1
		}
		switch strings.ToLower(key) {
		case "i":
			a.industry.step(delta)
		case "c":
			a.city.step(delta)
		case "y":
			a.year.step(delta)
		}
		a.recompute()
		return a, nil

	case "0":
		a.industry.idx, a.city.idx, a.year.idx = 0, 0, 0
		a.recompute()
		return a, nil

	case "f":
		return a.openFilterForm()

	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(components.Tabs) {
		a.activeTab = int(key[0] - '1')
		return a, nil
	}

	if a.activeTab == tabRecords {
		page := max(1, a.contentHeight()-4)
		last := max(0, a.filtered.Len()-1)
		switch key {
		case "j", "down":
			a.recCursor = min(a.recCursor+1, last)
		case "k", "up":
			a.recCursor = max(a.recCursor-1, 0)
		case "pgdown", "ctrl+d":
			a.recCursor = min(a.recCursor+page, last)
		case "pgup", "ctrl+u":
			a.recCursor = max(a.recCursor-page, 0)
		case "g", "home":
			a.recCursor = 0
		case "G", "end":
			a.recCursor = last
		}
	}
	return a, nil
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	return components.TabAtX(x)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) contentHeight() int {
	// tab bar + filter row + status bar
	return max(a.height-3, minContentHeight)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.filterForm != nil {
		return a.viewFilterForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fundboard needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fundboard"))
	b.WriteString(subtitleStyle.Render(" · Startup Funding"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading " + a.path))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		name     string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"1-7", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Scroll records"},
			{"g G", "First / last record"},
		}},
		{"Filters", [][2]string{
			{"i I", "Next / previous industry"},
			{"c C", "Next / previous city"},
			{"y Y", "Next / previous year"},
			{"f", "Pick filters from a form"},
			{"0", "Reset all filters"},
		}},
		{"General", [][2]string{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-8s", bind[0])), descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderFilterRow(w int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	activeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.AccentDim).Bold(true)

	pill := func(label string, s selector) string {
		v := s.value()
		style := valueStyle
		if v != pipeline.AllOption {
			style = activeStyle
		}
		return labelStyle.Render(" "+label+" ") + style.Render(" "+v+" ")
	}

	row := pill("industry", a.industry) + labelStyle.Render(" │") +
		pill("city", a.city) + labelStyle.Render(" │") +
		pill("year", a.year) +
		labelStyle.Render(fmt.Sprintf("   %s of %s records",
			cli.FormatNumber(int64(a.filtered.Len())), cli.FormatNumber(int64(a.full.Len()))))

	return lipgloss.NewStyle().Background(t.Surface).Width(w).MaxWidth(w).Render(row)
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderFilterRow(w)

	info := fmt.Sprintf("%s · %s", a.path, a.result.LoadTime.Round(time.Millisecond))
	statusBar := components.RenderStatusBar(w, info, a.warning)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.full.IsEmpty():
		content = a.renderEmpty(cw, "No startup data found.")
	case a.activeTab == tabForecast:
		// The forecast ignores filters, so it renders even for an empty subset.
		content = a.renderForecastTab(cw)
	case a.filtered.IsEmpty():
		content = a.renderEmpty(cw, "No records match the selected filters.")
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabRecords:
		content = a.renderRecordsTab(cw, contentH)
	case a.activeTab == tabIndustries:
		content = a.renderIndustriesTab(cw)
	case a.activeTab == tabCities:
		content = a.renderCitiesTab(cw)
	case a.activeTab == tabGrowth:
		content = a.renderGrowthTab(cw)
	case a.activeTab == tabInvestors:
		content = a.renderInvestorsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderEmpty(cw int, msg string) string {
	body := msg
	if a.warning != "" {
		body = a.warning + "\n\n" + msg
	}
	return "\n" + components.Placeholder("", body, min(cw, 70))
}

// loadDataCmd loads the dataset in a background goroutine and delivers the
// result through sub.
func loadDataCmd(path string, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			sub <- DataLoadedMsg{Result: pipeline.Load(path)}
		}()
		return waitForLoadMsg(sub)()
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
