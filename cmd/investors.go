package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var flagInvestorsTop int

var investorsCmd = &cobra.Command{
	Use:   "investors",
	Short: "Most active investors",
	RunE:  runInvestors,
}

func init() {
	investorsCmd.Flags().IntVarP(&flagInvestorsTop, "top", "t", 10, "Number of investors to show (0 for all)")
	rootCmd.AddCommand(investorsCmd)
}

func runInvestors(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	stats := pipeline.AggregateInvestors(filtered, flagInvestorsTop)
	if len(stats) == 0 {
		fmt.Println("\n  No investor data for the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("TOP INVESTORS", c)))
	fmt.Println()

	maxCount := float64(stats[0].Investments)
	rows := make([][]string, 0, len(stats))
	for i, s := range stats {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			cli.Truncate(s.Investor, 36),
			cli.FormatNumber(int64(s.Investments)),
			cli.RenderBar(float64(s.Investments), maxCount, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Investor", "Investments", ""},
		Rows:    rows,
	}))
	return nil
}
