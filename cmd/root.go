// Package cmd implements the fundboard CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/cli"
	"github.com/theirongolddev/fundboard/internal/config"
	"github.com/theirongolddev/fundboard/internal/logging"
	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

var (
	flagFile     string
	flagIndustry string
	flagCity     string
	flagYear     string
	flagQuiet    bool
	flagLogLevel string
)

// cfg is the effective configuration, resolved before any command runs.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:               "fundboard",
	Short:             "Startup funding dashboard",
	Long:              "Explore Indian startup funding data: filter by industry, city and year, chart it, export it.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Funding CSV file (default from config, then "+config.DefaultDataFile+")")
	rootCmd.PersistentFlags().StringVarP(&flagIndustry, "industry", "i", pipeline.AllOption, "Filter to industry vertical (exact match)")
	rootCmd.PersistentFlags().StringVarP(&flagCity, "city", "c", pipeline.AllOption, "Filter to city (exact match)")
	rootCmd.PersistentFlags().StringVarP(&flagYear, "year", "y", pipeline.AllOption, "Filter to year")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig resolves file, env and flag settings and installs the logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	if flagFile != "" {
		cfg.General.DataFile = flagFile
	}
	if cfg.General.DataFile == "" {
		cfg.General.DataFile = config.DefaultDataFile
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	logging.Setup(cfg.Logging, os.Stderr)
	return nil
}

// loadData is the shared data loading path used by all commands. It never
// fails: a load error is reported on stderr and an empty dataset returned.
func loadData() *pipeline.LoadResult {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Loading %s...\n", cfg.General.DataFile)
	}

	result := pipeline.Load(cfg.General.DataFile)
	if result.Failed() {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(result.Warning()))
		return result
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s (%s)\n", result.Success(), result.LoadTime.Round(time.Millisecond))
		if result.BadDates > 0 || result.BadAmounts > 0 {
			fmt.Fprintln(os.Stderr, cli.RenderMuted(fmt.Sprintf(
				"  %d unparseable dates, %d unparseable amounts treated as missing",
				result.BadDates, result.BadAmounts)))
		}
	}
	return result
}

// applyFilters narrows ds by the --industry, --city and --year flags.
func applyFilters(ds model.Dataset) (model.Dataset, pipeline.Criteria, error) {
	c, err := pipeline.ParseCriteria(flagIndustry, flagCity, flagYear)
	if err != nil {
		return model.Dataset{}, c, err
	}
	return pipeline.Filter(ds, c), c, nil
}

// loadFiltered runs loadData and applyFilters. ok is false when there is
// nothing to show; the reason has already been printed.
func loadFiltered() (full, filtered model.Dataset, c pipeline.Criteria, ok bool, err error) {
	result := loadData()
	if result.Empty() {
		fmt.Println("\n  No startup data found.")
		return full, filtered, c, false, nil
	}
	full = result.Dataset

	filtered, c, err = applyFilters(full)
	if err != nil {
		return full, filtered, c, false, err
	}
	if filtered.IsEmpty() {
		fmt.Println("\n  No records match the selected filters.")
		return full, filtered, c, false, nil
	}
	return full, filtered, c, true, nil
}

// title decorates a section title with the active filter.
func title(name string, c pipeline.Criteria) string {
	if c.IsZero() {
		return name
	}
	return name + "  " + c.String()
}
