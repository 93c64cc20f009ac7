package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var industriesCmd = &cobra.Command{
	Use:   "industries",
	Short: "Funding by industry vertical",
	RunE:  runIndustries,
}

func init() {
	rootCmd.AddCommand(industriesCmd)
}

func runIndustries(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	stats := pipeline.AggregateIndustries(filtered)
	if len(stats) == 0 {
		fmt.Println("\n  No industry data for the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("INVESTMENT BY INDUSTRY", c)))
	fmt.Println()

	maxAmount := stats[0].AmountUSD
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			cli.Truncate(s.Industry, 28),
			cli.FormatNumber(int64(s.Deals)),
			cli.FormatUSD(s.AmountUSD),
			cli.RenderBar(s.AmountUSD, maxAmount, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Industry", "Deals", "Amount", ""},
		Rows:    rows,
	}))
	return nil
}
