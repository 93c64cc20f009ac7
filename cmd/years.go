package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var yearsCmd = &cobra.Command{
	Use:   "years",
	Short: "Startup growth over the years",
	RunE:  runYears,
}

func init() {
	rootCmd.AddCommand(yearsCmd)
}

func runYears(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	stats := pipeline.AggregateYears(filtered)
	if len(stats) == 0 {
		fmt.Println("\n  No dated records for the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("STARTUP GROWTH", c)))
	fmt.Println()

	counts := make([]float64, len(stats))
	maxCount := 0.0
	for i, s := range stats {
		counts[i] = float64(s.Startups)
		maxCount = max(maxCount, counts[i])
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.Year),
			cli.FormatNumber(int64(s.Startups)),
			cli.FormatUSD(s.AmountUSD),
			cli.RenderBar(float64(s.Startups), maxCount, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Year", "Startups", "Amount", ""},
		Rows:    rows,
	}))
	fmt.Printf("\n  Trend  %s\n", cli.RenderSparkline(counts))
	return nil
}
