package tui

import (
	"fmt"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/tui/components"
	"github.com/theirongolddev/fundboard/internal/tui/theme"
)

func (a App) renderIndustriesTab(cw int) string {
	t := theme.Active
	halves := components.LayoutRow(cw, 2)

	byAmount := make([]components.BarRow, 0, len(a.industries))
	for _, ind := range a.industries {
		byAmount = append(byAmount, components.BarRow{
			Label: ind.Industry,
			Value: ind.AmountUSD,
			Text:  cli.FormatUSD(ind.AmountUSD),
		})
	}
	byDeals := make([]components.BarRow, 0, len(a.industries))
	for _, ind := range a.industries {
		byDeals = append(byDeals, components.BarRow{
			Label: ind.Industry,
			Value: float64(ind.Deals),
			Text:  cli.FormatNumber(int64(ind.Deals)),
		})
	}

	return components.CardRow([]string{
		components.ContentCard("Funding by Industry",
			components.HBarChart(byAmount, t.Accent, components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Rounds by Industry",
			components.HBarChart(byDeals, t.Blue, components.CardInnerWidth(halves[1])), halves[1]),
	})
}

func (a App) renderCitiesTab(cw int) string {
	t := theme.Active
	top := a.cities[:min(len(a.cities), rankLimit)]

	rows := make([]components.BarRow, len(top))
	for i, c := range top {
		rows[i] = components.BarRow{
			Label: c.City,
			Value: c.AmountUSD,
			Text:  fmt.Sprintf("%s · %d rounds", cli.FormatUSD(c.AmountUSD), c.Deals),
		}
	}
	title := fmt.Sprintf("Top %d Cities by Funding", len(top))
	if len(top) == 0 {
		return components.Placeholder(title, "No cities recorded.", cw)
	}
	return components.ContentCard(title, components.HBarChart(rows, t.Orange, components.CardInnerWidth(cw)), cw)
}

func (a App) renderInvestorsTab(cw int) string {
	t := theme.Active
	top := a.investors[:min(len(a.investors), rankLimit)]

	title := fmt.Sprintf("Top %d Investors by Rounds", len(top))
	if len(top) == 0 {
		return components.Placeholder(title, "No investors recorded.", cw)
	}
	rows := make([]components.BarRow, len(top))
	for i, inv := range top {
		rows[i] = components.BarRow{
			Label: inv.Investor,
			Value: float64(inv.Investments),
			Text:  cli.FormatNumber(int64(inv.Investments)),
		}
	}

	return components.ContentCard(title, components.HBarChart(rows, t.Green, components.CardInnerWidth(cw)), cw)
}
