package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Investment over time, by month and by year",
	RunE:  runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	daily := pipeline.AggregateDaily(filtered)
	if len(daily) == 0 {
		fmt.Println("\n  No dated records for the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("INVESTMENT OVER TIME", c)))
	fmt.Println()

	months := monthlyTotals(daily)
	maxAmount := 0.0
	for _, m := range months {
		maxAmount = max(maxAmount, m.AmountUSD)
	}

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.Date.Format("Jan 2006"),
			cli.FormatUSD(m.AmountUSD),
			cli.RenderBar(m.AmountUSD, maxAmount, 24),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Amount", ""},
		Rows:    rows,
	}))

	values := make([]float64, len(daily))
	for i, d := range daily {
		values[i] = d.AmountUSD
	}
	fmt.Printf("\n  Daily  %s\n", cli.RenderSparkline(values))
	fmt.Println(cli.RenderMuted(fmt.Sprintf("  %d funding days, %s to %s",
		len(daily), cli.FormatDate(daily[0].Date), cli.FormatDate(daily[len(daily)-1].Date))))
	return nil
}

// monthlyTotals folds a sorted daily series into calendar months.
func monthlyTotals(daily []model.DailyPoint) []model.DailyPoint {
	var out []model.DailyPoint
	for _, d := range daily {
		month := d.Date.AddDate(0, 0, 1-d.Date.Day())
		if n := len(out); n > 0 && out[n-1].Date.Equal(month) {
			out[n-1].AmountUSD += d.AmountUSD
			continue
		}
		out = append(out, model.DailyPoint{Date: month, AmountUSD: d.AmountUSD})
	}
	return out
}
