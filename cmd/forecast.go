package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var flagHorizon int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project total daily investment forward (ignores filters)",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&flagHorizon, "horizon", 0,
		fmt.Sprintf("Days to project, at most %d (default from config)", forecast.MaxHorizon))
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	horizon, err := resolveHorizon(flagHorizon, cfg.Forecast.HorizonDays)
	if err != nil {
		return err
	}

	result := loadData()
	if result.Empty() {
		fmt.Println("\n  No startup data found.")
		return nil
	}

	series := pipeline.AggregateDaily(result.Dataset)
	res, err := forecast.LinearTrend{}.Forecast(series, horizon)
	if errors.Is(err, forecast.ErrInsufficientData) {
		fmt.Println()
		fmt.Println(cli.RenderWarning("Not enough data for market prediction."))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("MARKET PREDICTION  Next %dd", horizon)))
	fmt.Println()

	last := res.Projection[len(res.Projection)-1]
	var total float64
	for _, p := range res.Projection {
		total += p.Value
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Observed Days", cli.FormatNumber(int64(len(res.History)))},
			{"Trend", cli.FormatUSD(res.Slope) + "/day"},
			{"R²", fmt.Sprintf("%.3f", res.RSquared)},
			{"---"},
			{"Projected Total", cli.FormatUSD(total)},
			{"End Date", cli.FormatDate(last.Date)},
			{"End Value", cli.FormatUSD(last.Value)},
			{"95% Band", cli.FormatUSD(last.Lower) + " to " + cli.FormatUSD(last.Upper)},
		},
	}))

	values := make([]float64, len(res.Projection))
	for i, p := range res.Projection {
		values[i] = p.Value
	}
	fmt.Printf("\n  Projection  %s\n", cli.RenderSparkline(values))
	return nil
}

// resolveHorizon picks the flag value, else the configured one, else the
// default, and rejects anything above forecast.MaxHorizon.
func resolveHorizon(flag, configured int) (int, error) {
	horizon := flag
	if horizon <= 0 {
		horizon = configured
	}
	if horizon <= 0 {
		horizon = forecast.DefaultHorizon
	}
	if horizon > forecast.MaxHorizon {
		return 0, fmt.Errorf("horizon of %d days: %w (max %d)", horizon, forecast.ErrHorizonTooLarge, forecast.MaxHorizon)
	}
	return horizon, nil
}
