package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/pipeline"
	"github.com/theirongolddev/fundboard/internal/tui/components"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testResult() *pipeline.LoadResult {
	recs := []model.Record{
		{Date: day(2017, 8, 1), StartupName: "Zomato", IndustryVertical: "Consumer Internet", CityLocation: "Bengaluru", InvestorsName: "Info Edge", InvestmentType: "Private Equity", AmountUSD: model.Float(1_000_000)},
		{Date: day(2018, 3, 5), StartupName: "Ola", IndustryVertical: "Transportation", CityLocation: "Bengaluru", InvestorsName: "SoftBank", InvestmentType: "Private Equity", AmountUSD: model.Float(2_500_000)},
		{Date: day(2017, 11, 17), StartupName: "Paytm", IndustryVertical: "Finance", CityLocation: "Noida", InvestorsName: "SoftBank", InvestmentType: "Private Equity", AmountUSD: model.Float(1_400_000_000)},
		{StartupName: "Swiggy", IndustryVertical: "Consumer Internet", CityLocation: "Bengaluru", InvestorsName: "Accel", InvestmentType: "Seed Funding"},
	}
	return &pipeline.LoadResult{
		Dataset:    model.NewDataset(recs),
		Path:       "startup_funding.csv",
		Rows:       len(recs),
		BadDates:   1,
		BadAmounts: 1,
		LoadTime:   3 * time.Millisecond,
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs through Update and returns the resulting App.
func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		var ok bool
		a, ok = m.(App)
		require.True(t, ok)
	}
	return a
}

func newLoadedApp(t *testing.T, industry, city, year string) App {
	t.Helper()
	a := NewApp("startup_funding.csv", 30, industry, city, year)
	return send(t, a,
		tea.WindowSizeMsg{Width: 120, Height: 40},
		DataLoadedMsg{Result: testResult()},
	)
}

func TestDataLoaded_AppliesInitialFilters(t *testing.T) {
	a := newLoadedApp(t, "Finance", pipeline.AllOption, "2017")

	assert.True(t, a.loaded)
	assert.Equal(t, "Finance", a.industry.value())
	assert.Equal(t, "2017", a.year.value())
	assert.Equal(t, 1, a.filtered.Len())
	assert.Equal(t, "Paytm", a.filtered.At(0).StartupName)
	assert.Equal(t, 4, a.full.Len())
}

func TestDataLoaded_UnknownInitialValueMeansAll(t *testing.T) {
	a := newLoadedApp(t, "Space", pipeline.AllOption, pipeline.AllOption)

	assert.Equal(t, pipeline.AllOption, a.industry.value())
	assert.Equal(t, 4, a.filtered.Len())
}

func TestFilterKeys_CycleAndWrap(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	// All, Consumer Internet, Finance, Transportation
	require.Len(t, a.industry.options, 4)

	a = send(t, a, key("i"))
	assert.Equal(t, "Consumer Internet", a.industry.value())
	assert.Equal(t, 2, a.filtered.Len())

	a = send(t, a, key("i"), key("i"), key("i"))
	assert.Equal(t, pipeline.AllOption, a.industry.value())

	a = send(t, a, key("I"))
	assert.Equal(t, "Transportation", a.industry.value())
	assert.Equal(t, 1, a.filtered.Len())
}

func TestFilterKeys_Reset(t *testing.T) {
	a := newLoadedApp(t, "Finance", "Noida", "2017")
	require.Equal(t, 1, a.filtered.Len())

	a = send(t, a, key("0"))
	assert.True(t, a.criteria.IsZero())
	assert.Equal(t, 4, a.filtered.Len())
	assert.Equal(t, 4, a.summary.Records)
}

func TestFilterKeys_NoMatchesShowsMessage(t *testing.T) {
	a := newLoadedApp(t, "Finance", "Bengaluru", pipeline.AllOption)

	assert.True(t, a.filtered.IsEmpty())
	assert.Contains(t, a.View(), "No records match the selected filters.")
}

func TestFailedLoad_ShowsWarning(t *testing.T) {
	a := NewApp("missing.csv", 30, "", "", "")
	a = send(t, a,
		tea.WindowSizeMsg{Width: 120, Height: 40},
		DataLoadedMsg{Result: &pipeline.LoadResult{Path: "missing.csv", Err: errors.New("open missing.csv: no such file")}},
	)

	view := a.View()
	assert.Contains(t, view, "Error loading CSV")
	assert.Contains(t, view, "No startup data found.")
	assert.Equal(t, []string{pipeline.AllOption}, a.industry.options)
}

func TestTabKeys(t *testing.T) {
	a := newLoadedApp(t, "", "", "")

	a = send(t, a, key("3"))
	assert.Equal(t, tabIndustries, a.activeTab)

	a = send(t, a, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabCities, a.activeTab)

	a = send(t, a, key("1"), tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabForecast, a.activeTab)
}

func TestEveryTabRenders(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	for i, tab := range components.Tabs {
		a.activeTab = i
		view := a.View()
		assert.NotEmpty(t, view, tab.Name)
		assert.Equal(t, 40, len(strings.Split(view, "\n")), "tab %s fills the screen", tab.Name)
	}
}

func TestForecastTab(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	require.NoError(t, a.forecastErr)
	assert.Len(t, a.prediction.Projection, 30)

	a.activeTab = tabForecast
	assert.Contains(t, a.View(), "Projected Total")
}

func TestForecastTab_InsufficientData(t *testing.T) {
	res := testResult()
	res.Dataset = model.NewDataset(res.Dataset.Records()[:1])
	a := NewApp("startup_funding.csv", 30, "", "", "")
	a = send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40}, DataLoadedMsg{Result: res}, key("7"))

	assert.Contains(t, a.View(), "Not enough data for market prediction.")
}

func TestForecastIgnoresFilters(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	before := a.prediction

	a = send(t, a, key("i"))
	assert.Equal(t, before, a.prediction)
}

func TestRecordsScroll(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	a = send(t, a, key("2"), key("j"), key("j"))
	assert.Equal(t, 2, a.recCursor)

	a = send(t, a, key("G"))
	assert.Equal(t, 3, a.recCursor)

	a = send(t, a, key("j"))
	assert.Equal(t, 3, a.recCursor, "cursor stops at the last record")

	a = send(t, a, key("g"))
	assert.Equal(t, 0, a.recCursor)
}

func TestRecordsCursorClampedAfterFilter(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	a = send(t, a, key("2"), key("G"))
	require.Equal(t, 3, a.recCursor)

	a = send(t, a, key("c")) // Bengaluru: 3 records
	assert.Equal(t, 2, a.recCursor)
}

func TestRecordWindow(t *testing.T) {
	cases := []struct {
		total, cursor, visible int
		start, end             int
	}{
		{total: 0, cursor: 0, visible: 10, start: 0, end: 0},
		{total: 5, cursor: 0, visible: 10, start: 0, end: 5},
		{total: 100, cursor: 0, visible: 10, start: 0, end: 10},
		{total: 100, cursor: 50, visible: 10, start: 45, end: 55},
		{total: 100, cursor: 99, visible: 10, start: 90, end: 100},
	}
	for _, tc := range cases {
		start, end := recordWindow(tc.total, tc.cursor, tc.visible)
		assert.Equal(t, tc.start, start, "%+v", tc)
		assert.Equal(t, tc.end, end, "%+v", tc)
	}
}

func TestTooNarrow(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	a = send(t, a, tea.WindowSizeMsg{Width: minTerminalWidth - 1, Height: 30})
	assert.Contains(t, a.View(), "Terminal too narrow")
}

func TestHelpToggle(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	a = send(t, a, key("?"))
	require.True(t, a.showHelp)
	assert.Contains(t, a.View(), "Keyboard Shortcuts")

	// any key closes help without acting
	a = send(t, a, key("3"))
	assert.False(t, a.showHelp)
	assert.Equal(t, tabOverview, a.activeTab)
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	a := NewApp("startup_funding.csv", 30, "", "", "")
	a = send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40}, key("3"))
	assert.Equal(t, tabOverview, a.activeTab)
	assert.Contains(t, a.View(), "Loading")
}

func TestFilterFormEscCancels(t *testing.T) {
	a := newLoadedApp(t, "", "", "")
	m, _ := a.openFilterForm()
	a = m.(App)
	require.NotNil(t, a.filterForm)

	a = send(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, a.filterForm)
	assert.Equal(t, 4, a.filtered.Len())
}
