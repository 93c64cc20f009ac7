// Package export writes a filtered dataset to disk in several formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/source"
	"github.com/theirongolddev/fundboard/internal/store"
)

// Format is an output format name.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatXLSX, FormatJSON, FormatYAML, FormatSQLite}

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// ErrIncompleteExport means a SQLite export did not hold every record after writing.
var ErrIncompleteExport = errors.New("incomplete export")

// SheetName is the worksheet written by the XLSX exporter.
const SheetName = "Startups"

// ParseFormat validates a format name. "yml" and "db" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "sqlite", "db":
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Options carries metadata recorded by formats that support it.
type Options struct {
	SourcePath string
	Criteria   string
}

// WriteFile writes ds to path in format f.
func WriteFile(path string, f Format, ds model.Dataset, opts Options) error {
	if f == FormatSQLite {
		return writeSQLite(path, ds, opts)
	}
	if f == FormatXLSX {
		return writeXLSX(path, ds)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(out, f, ds); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Write streams ds to w. XLSX and SQLite need a file and are rejected here.
func Write(w io.Writer, f Format, ds model.Dataset) error {
	switch f {
	case FormatCSV:
		return writeCSV(w, ds)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toRows(ds))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRows(ds)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatXLSX, FormatSQLite:
		return fmt.Errorf("%w: %s cannot be streamed", ErrUnknownFormat, f)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Row is the serialised form of a record. Null fields are omitted.
type Row struct {
	Date             string   `json:"date,omitempty" yaml:"date,omitempty"`
	StartupName      string   `json:"startup_name,omitempty" yaml:"startup_name,omitempty"`
	IndustryVertical string   `json:"industry_vertical,omitempty" yaml:"industry_vertical,omitempty"`
	SubVertical      string   `json:"sub_vertical,omitempty" yaml:"sub_vertical,omitempty"`
	CityLocation     string   `json:"city_location,omitempty" yaml:"city_location,omitempty"`
	InvestorsName    string   `json:"investors_name,omitempty" yaml:"investors_name,omitempty"`
	InvestmentType   string   `json:"investment_type,omitempty" yaml:"investment_type,omitempty"`
	AmountUSD        *float64 `json:"amount_usd,omitempty" yaml:"amount_usd,omitempty"`
}

// NewRow converts a record. Dates use ISO 8601.
func NewRow(r model.Record) Row {
	row := Row{
		StartupName:      r.StartupName,
		IndustryVertical: r.IndustryVertical,
		SubVertical:      r.SubVertical,
		CityLocation:     r.CityLocation,
		InvestorsName:    r.InvestorsName,
		InvestmentType:   r.InvestmentType,
		AmountUSD:        r.AmountUSD,
	}
	if r.HasDate() {
		row.Date = r.Date.Format(time.DateOnly)
	}
	return row
}

func toRows(ds model.Dataset) []Row {
	rows := make([]Row, 0, ds.Len())
	ds.Each(func(_ int, r model.Record) bool {
		rows = append(rows, NewRow(r))
		return true
	})
	return rows
}

// writeCSV writes the raw ten-column layout so the output can be loaded again.
func writeCSV(w io.Writer, ds model.Dataset) error {
	cw := csv.NewWriter(w)
	header := append([]string{"sr_no"}, source.CanonicalHeader...)
	header = append(header, "remarks")
	if err := cw.Write(header); err != nil {
		return err
	}

	var werr error
	ds.Each(func(i int, r model.Record) bool {
		werr = cw.Write([]string{
			fmt.Sprint(i + 1),
			source.FormatDate(r.Date),
			r.StartupName,
			r.IndustryVertical,
			r.SubVertical,
			r.CityLocation,
			r.InvestorsName,
			r.InvestmentType,
			source.FormatAmount(r.AmountUSD),
			"",
		})
		return werr == nil
	})
	if werr != nil {
		return fmt.Errorf("writing csv row: %w", werr)
	}

	cw.Flush()
	return cw.Error()
}

func writeXLSX(path string, ds model.Dataset) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, h := range source.CanonicalHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, col, col, 20)
	}

	var cellErr error
	ds.Each(func(i int, r model.Record) bool {
		row := i + 2
		vals := []any{
			source.FormatDate(r.Date),
			r.StartupName,
			r.IndustryVertical,
			r.SubVertical,
			r.CityLocation,
			r.InvestorsName,
			r.InvestmentType,
			nil,
		}
		if r.AmountUSD != nil {
			vals[7] = *r.AmountUSD
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		cellErr = f.SetSheetRow(SheetName, cell, &vals)
		return cellErr == nil
	})
	if cellErr != nil {
		return fmt.Errorf("writing xlsx row: %w", cellErr)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSQLite(path string, ds model.Dataset, opts Options) error {
	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.WriteDataset(ds, store.Meta{
		SourcePath: opts.SourcePath,
		Criteria:   opts.Criteria,
	}); err != nil {
		return err
	}
	return verifySQLite(db, ds.Len())
}

// verifySQLite checks that the stored rows and the export metadata both
// account for want records.
func verifySQLite(db *store.DB, want int) error {
	n, err := db.RecordCount()
	if err != nil {
		return fmt.Errorf("counting exported records: %w", err)
	}
	meta, err := db.Meta()
	if err != nil {
		return fmt.Errorf("reading export meta: %w", err)
	}
	if n != want || meta.RecordCount != want {
		return fmt.Errorf("%w: stored %d rows, meta says %d, want %d", ErrIncompleteExport, n, meta.RecordCount, want)
	}
	return nil
}
