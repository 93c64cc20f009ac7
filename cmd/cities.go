package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var flagCitiesTop int

var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Top cities by investment",
	RunE:  runCities,
}

func init() {
	citiesCmd.Flags().IntVarP(&flagCitiesTop, "top", "t", 10, "Number of cities to show (0 for all)")
	rootCmd.AddCommand(citiesCmd)
}

func runCities(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	stats := pipeline.AggregateCities(filtered, flagCitiesTop)
	if len(stats) == 0 {
		fmt.Println("\n  No city data for the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("TOP CITIES BY INVESTMENT", c)))
	fmt.Println()

	maxAmount := stats[0].AmountUSD
	rows := make([][]string, 0, len(stats))
	for i, s := range stats {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			cli.Truncate(s.City, 24),
			cli.FormatNumber(int64(s.Deals)),
			cli.FormatUSD(s.AmountUSD),
			cli.RenderBar(s.AmountUSD, maxAmount, 20),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "City", "Deals", "Amount", ""},
		Rows:    rows,
	}))
	return nil
}
