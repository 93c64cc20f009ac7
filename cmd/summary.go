package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline funding metrics for the selected filters",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	stats := pipeline.Summarize(filtered)

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("STARTUP FUNDING", c)))
	fmt.Println()

	period := "-"
	if !stats.FirstDate.IsZero() {
		period = cli.FormatDate(stats.FirstDate) + " to " + cli.FormatDate(stats.LastDate)
	}

	rows := [][]string{
		{"Records", cli.FormatNumber(int64(stats.Records))},
		{"Startups", cli.FormatNumber(int64(stats.Startups))},
		{"Industries", cli.FormatNumber(int64(stats.Industries))},
		{"Cities", cli.FormatNumber(int64(stats.Cities))},
		{"Investors", cli.FormatNumber(int64(stats.Investors))},
		{"---"},
		{"Total Funding", cli.FormatUSDFull(stats.TotalUSD)},
		{"Mean Deal", cli.FormatUSD(stats.MeanUSD)},
		{"Median Deal", cli.FormatUSD(stats.MedianUSD)},
		{"Largest Deal", cli.FormatUSD(stats.MaxUSD)},
		{"---"},
		{"Period", period},
		{"Dated Records", cli.FormatPercent(ratio(stats.DatedRecords, stats.Records))},
		{"Disclosed Amounts", cli.FormatPercent(ratio(stats.FundedRecords, stats.Records))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	return nil
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
