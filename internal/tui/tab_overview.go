package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/tui/components"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// overviewTopIndustries is how many verticals the share list shows.
const overviewTopIndustries = 6

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: headline numbers
	mean := "-"
	if s.FundedRecords > 0 {
		mean = cli.FormatUSD(s.MeanUSD) + " mean"
	}
	cards := []components.Metric{
		{Label: "Total Funding", Value: cli.FormatUSD(s.TotalUSD), Note: mean},
		{Label: "Rounds", Value: cli.FormatNumber(int64(s.Records)), Note: fmt.Sprintf("%s with amount", cli.FormatNumber(int64(s.FundedRecords)))},
		{Label: "Startups", Value: cli.FormatNumber(int64(s.Startups)), Note: fmt.Sprintf("%d industries", s.Industries)},
		{Label: "Median Round", Value: cli.FormatUSD(s.MedianUSD), Note: "largest " + cli.FormatUSD(s.MaxUSD)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: funding over time
	if len(a.daily) > 1 {
		innerW := components.CardInnerWidth(cw)
		vals := make([]float64, len(a.daily))
		for i, d := range a.daily {
			vals[i] = d.AmountUSD
		}
		title := fmt.Sprintf("Funding Over Time (%s to %s)",
			cli.FormatDate(a.daily[0].Date), cli.FormatDate(a.daily[len(a.daily)-1].Date))
		b.WriteString(components.ContentCard(title,
			components.Sparkline(components.Resample(vals, innerW), t.Accent), cw))
		b.WriteString("\n")
	}

	// Row 3: industry share + dataset facts
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		a.renderIndustryShare(halves[0]),
		a.renderDatasetFacts(halves[1]),
	}))
	return b.String()
}

func (a App) renderIndustryShare(w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)
	if len(a.industries) == 0 || a.summary.TotalUSD == 0 {
		return components.Placeholder("Share by Industry", "No funded rounds.", w)
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	nameW := min(16, inner/3)
	barW := max(4, inner-nameW-9)

	rows := a.industries[:min(len(a.industries), overviewTopIndustries)]
	lines := make([]string, len(rows))
	for i, ind := range rows {
		name := cli.Truncate(ind.Industry, nameW)
		lines[i] = nameStyle.Render(name+strings.Repeat(" ", max(0, nameW-lipgloss.Width(name)))) +
			space.Render(" ") +
			components.ShareBar(ind.AmountUSD/a.summary.TotalUSD, barW)
	}
	return components.ContentCard("Share by Industry", strings.Join(lines, "\n"), w)
}

func (a App) renderDatasetFacts(w int) string {
	t := theme.Active
	s := a.summary
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	span := "-"
	if !s.FirstDate.IsZero() {
		span = cli.FormatDate(s.FirstDate) + " to " + cli.FormatDate(s.LastDate)
	}
	filter := a.criteria.String()

	facts := [][2]string{
		{"Filter", filter},
		{"Date range", span},
		{"Cities", cli.FormatNumber(int64(s.Cities))},
		{"Investors", cli.FormatNumber(int64(s.Investors))},
		{"Undated", cli.FormatNumber(int64(s.Records - s.DatedRecords))},
	}
	if a.result != nil {
		facts = append(facts,
			[2]string{"Bad dates", cli.FormatNumber(int64(a.result.BadDates))},
			[2]string{"Bad amounts", cli.FormatNumber(int64(a.result.BadAmounts))},
		)
	}

	inner := components.CardInnerWidth(w)
	lines := make([]string, len(facts))
	for i, f := range facts {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-12s", f[0])) +
			valueStyle.Render(cli.Truncate(f[1], max(1, inner-12)))
	}
	return components.ContentCard("Dataset", strings.Join(lines, "\n"), w)
}
