package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/tui/components"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

// monthlyProjection sums projected daily values per calendar month.
func monthlyProjection(pts []forecast.Point) (values []float64, labels []string) {
	var cur time.Time
	for _, p := range pts {
		m := time.Date(p.Date.Year(), p.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		if len(values) == 0 || !m.Equal(cur) {
			cur = m
			values = append(values, 0)
			labels = append(labels, m.Format("Jan 06"))
		}
		values[len(values)-1] += max(p.Value, 0)
	}
	return values, labels
}

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	title := fmt.Sprintf("Market Prediction (%d days)", a.horizon)

	if a.forecastErr != nil {
		msg := a.forecastErr.Error()
		if errors.Is(a.forecastErr, forecast.ErrInsufficientData) {
			msg = "Not enough data for market prediction."
		}
		return components.Placeholder(title, msg, cw)
	}

	res := a.prediction
	proj := res.Projection
	if len(proj) == 0 {
		return components.Placeholder(title, "Nothing to project.", cw)
	}

	total := 0.0
	for _, p := range proj {
		total += max(p.Value, 0)
	}
	last := proj[len(proj)-1]

	var b strings.Builder
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Trend", Value: cli.FormatUSD(res.Slope) + "/day", Note: "daily change in funding"},
		{Label: "Fit (R²)", Value: fmt.Sprintf("%.3f", res.RSquared), Note: fmt.Sprintf("%d observed days", len(res.History))},
		{Label: "Projected Total", Value: cli.FormatUSD(total), Note: "through " + cli.FormatDate(last.Date)},
		{Label: "Final Day", Value: cli.FormatUSD(last.Value), Note: fmt.Sprintf("%s to %s", cli.FormatUSD(last.Lower), cli.FormatUSD(last.Upper))},
	}, cw))
	b.WriteString("\n")

	vals, labels := monthlyProjection(proj)
	b.WriteString(components.ContentCard("Projected Funding per Month (all data, filters ignored)",
		components.BarChart(vals, labels, t.Accent, components.CardInnerWidth(cw), 10), cw))
	return b.String()
}
