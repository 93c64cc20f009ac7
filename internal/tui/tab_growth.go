package tui

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/tui/components"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

func (a App) renderGrowthTab(cw int) string {
	t := theme.Active
	if len(a.years) == 0 {
		return components.Placeholder("Startups per Year", "No dated rounds in this selection.", cw)
	}

	counts := make([]float64, len(a.years))
	amounts := make([]float64, len(a.years))
	labels := make([]string, len(a.years))
	for i, y := range a.years {
		counts[i] = float64(y.Startups)
		amounts[i] = y.AmountUSD
		labels[i] = strconv.Itoa(y.Year)
	}

	halves := components.LayoutRow(cw, 2)
	var b strings.Builder
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Startups per Year",
			components.BarChart(counts, labels, t.Accent, components.CardInnerWidth(halves[0]), 10), halves[0]),
		components.ContentCard("Funding per Year",
			components.BarChart(amounts, labels, t.Yellow, components.CardInnerWidth(halves[1]), 10), halves[1]),
	}))
	b.WriteString("\n")

	rows := make([]components.BarRow, len(a.years))
	for i, y := range a.years {
		rows[i] = components.BarRow{
			Label: labels[i],
			Value: counts[i],
			Text:  cli.FormatNumber(int64(y.Startups)) + " startups · " + cli.FormatUSD(y.AmountUSD),
		}
	}
	b.WriteString(components.ContentCard("By Year", components.HBarChart(rows, t.Blue, components.CardInnerWidth(cw)), cw))
	return b.String()
}
