package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/tui/components"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

type recordColumn struct {
	title string
	width int // 0 = flexible
	right bool
	value func(r model.Record) string
}

var recordColumns = []recordColumn{
	{title: "Date", width: 11, value: func(r model.Record) string { return cli.FormatDate(r.Date) }},
	{title: "Startup", value: func(r model.Record) string { return cli.OrDash(r.StartupName) }},
	{title: "Industry", value: func(r model.Record) string { return cli.OrDash(r.IndustryVertical) }},
	{title: "City", width: 12, value: func(r model.Record) string { return cli.OrDash(r.CityLocation) }},
	{title: "Investors", value: func(r model.Record) string { return cli.OrDash(r.InvestorsName) }},
	{title: "Type", width: 14, value: func(r model.Record) string { return cli.OrDash(r.InvestmentType) }},
	{title: "Amount", width: 15, right: true, value: func(r model.Record) string { return cli.FormatAmount(r.AmountUSD) }},
}

// recordWidths resolves flexible columns so the row fills inner exactly.
func recordWidths(inner int) []int {
	widths := make([]int, len(recordColumns))
	fixed, flex := 0, 0
	for i, c := range recordColumns {
		widths[i] = c.width
		fixed += c.width
		if c.width == 0 {
			flex++
		}
	}
	gaps := len(recordColumns) - 1
	spare := max(flex*8, inner-fixed-gaps)
	shares := components.LayoutRow(spare, flex)
	j := 0
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = shares[j]
			j++
		}
	}
	return widths
}

func padCell(s string, w int, right bool) string {
	s = cli.Truncate(s, w)
	fill := strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
	if right {
		return fill + s
	}
	return s + fill
}

// recordWindow returns the [start, end) slice of rows visible around cursor.
func recordWindow(total, cursor, visible int) (int, int) {
	if visible <= 0 || total == 0 {
		return 0, 0
	}
	start := max(0, cursor-visible/2)
	end := min(total, start+visible)
	start = max(0, end-visible)
	return start, end
}

func (a App) renderRecordsTab(cw, h int) string {
	t := theme.Active
	inner := components.CardInnerWidth(cw)
	widths := recordWidths(inner)

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	cells := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		cells[i] = padCell(c.title, widths[i], c.right)
	}
	lines := []string{headStyle.Render(strings.Join(cells, " "))}

	// border (2) + title + header + footer
	visible := max(1, h-5)
	total := a.filtered.Len()
	start, end := recordWindow(total, a.recCursor, visible)
	for i := start; i < end; i++ {
		r := a.filtered.At(i)
		for j, c := range recordColumns {
			cells[j] = padCell(c.value(r), widths[j], c.right)
		}
		style := rowStyle
		if i == a.recCursor {
			style = selStyle
		}
		lines = append(lines, style.Render(strings.Join(cells, " ")))
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d-%d of %s · j/k scroll · g/G ends",
		start+1, end, cli.FormatNumber(int64(total)))))

	return components.ContentCard("Funding Rounds", strings.Join(lines, "\n"), cw)
}
