package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/chart"
	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/forecast"
)

var flagChartOutput string

var chartCmd = &cobra.Command{
	Use:   "chart KIND",
	Short: "Render a chart to PNG (industries, cities, years, investors, daily, forecast)",
	Args:  cobra.ExactArgs(1),
	RunE:  runChart,
}

func init() {
	for _, k := range chart.Kinds {
		chartCmd.ValidArgs = append(chartCmd.ValidArgs, string(k))
	}
	chartCmd.Flags().StringVarP(&flagChartOutput, "output", "o", "", "PNG path (default KIND.png)")
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, args []string) error {
	kind, err := chart.ParseKind(args[0])
	if err != nil {
		return err
	}
	out := flagChartOutput
	if out == "" {
		out = string(kind) + ".png"
	}

	full, filtered, _, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	// Render into memory so a failed chart leaves no partial file behind.
	var buf bytes.Buffer
	err = chart.Render(&buf, kind, filtered, full, cfg.Forecast.HorizonDays)
	switch {
	case errors.Is(err, chart.ErrNoData):
		fmt.Println("\n  Nothing to plot for the selected filters.")
		return nil
	case errors.Is(err, forecast.ErrInsufficientData):
		fmt.Println()
		fmt.Println(cli.RenderWarning("Not enough data for market prediction."))
		return nil
	case err != nil:
		return err
	}

	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil { //nolint:gosec // user-requested output file
		return fmt.Errorf("writing %s: %w", out, err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %s chart to %s\n", kind, out)
	}
	return nil
}
