package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/export"
)

var (
	flagExportFormat string
	flagExportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered records to CSV, XLSX, JSON, YAML or SQLite",
	Example: `  fundboard export -o bengaluru.xlsx --city Bengaluru
  fundboard export --format json -o - --year 2017`,
	RunE: runExport,
}

func init() {
	names := make([]string, len(export.Formats))
	for i, f := range export.Formats {
		names[i] = string(f)
	}
	exportCmd.Flags().StringVar(&flagExportFormat, "format", "", "Output format: "+strings.Join(names, ", ")+" (default from extension)")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", `Output path, or "-" for stdout`)
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := exportFormat()
	if err != nil {
		return err
	}

	_, filtered, c, ok, err := loadFiltered()
	if err != nil || !ok {
		return err
	}

	if flagExportOutput == "-" {
		return export.Write(os.Stdout, format, filtered)
	}

	opts := export.Options{SourcePath: cfg.General.DataFile, Criteria: c.String()}
	if err := export.WriteFile(flagExportOutput, format, filtered, opts); err != nil {
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Wrote %d records to %s (%s)\n", filtered.Len(), flagExportOutput, format)
	}
	return nil
}

func exportFormat() (export.Format, error) {
	if flagExportFormat != "" {
		return export.ParseFormat(flagExportFormat)
	}
	if flagExportOutput == "-" {
		return export.FormatCSV, nil
	}
	f, err := export.FormatForPath(flagExportOutput)
	if errors.Is(err, export.ErrUnknownFormat) {
		return "", fmt.Errorf("cannot infer format from %q, pass --format: %w", flagExportOutput, err)
	}
	return f, err
}
