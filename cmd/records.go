package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/model"
)

var flagRecordsLimit int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List funding rounds matching the selected filters",
	RunE:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVarP(&flagRecordsLimit, "limit", "l", 50, "Max rows to show (0 for all)")
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(_ *cobra.Command, _ []string) error {
	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title("FUNDING ROUNDS", c)))
	fmt.Println()

	rows := make([][]string, 0, filtered.Len())
	filtered.Each(func(i int, r model.Record) bool {
		if flagRecordsLimit > 0 && i >= flagRecordsLimit {
			return false
		}
		rows = append(rows, []string{
			cli.FormatDate(r.Date),
			cli.Truncate(cli.OrDash(r.StartupName), 24),
			cli.Truncate(cli.OrDash(r.IndustryVertical), 20),
			cli.Truncate(cli.OrDash(r.CityLocation), 14),
			cli.Truncate(cli.OrDash(r.InvestmentType), 16),
			cli.FormatAmount(r.AmountUSD),
		})
		return true
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Startup", "Industry", "City", "Round", "Amount (USD)"},
		Rows:    rows,
	}))

	if len(rows) < filtered.Len() {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  showing %d of %s rows, use --limit 0 for all",
			len(rows), cli.FormatNumber(int64(filtered.Len())))))
	}
	return nil
}
