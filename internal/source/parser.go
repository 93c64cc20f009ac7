// Package source reads startup funding CSV files into model records.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/theirongolddev/fundboard/internal/model"
)

// ErrMalformed marks input whose shape cannot be mapped onto the record schema.
var ErrMalformed = errors.New("malformed funding csv")

// parseDateLayout accepts one- or two-digit day and month fields.
const parseDateLayout = "2/1/2006"

// ParseResult holds the output of parsing one funding file.
type ParseResult struct {
	Records    []model.Record
	BadDates   int
	BadAmounts int
	Err        error
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	return Parse(f)
}

// Parse reads a funding CSV. The first row is the header and must have
// exactly NumColumns cells. Columns are mapped by position. Fields that fail
// to coerce become null and are counted; shape errors abort the parse.
func Parse(r io.Reader) ParseResult {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ParseResult{Err: fmt.Errorf("%w: no header row", ErrMalformed)}
	}
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading header: %w", err)}
	}
	if len(header) != NumColumns {
		return ParseResult{Err: fmt.Errorf("%w: header has %d columns, want %d",
			ErrMalformed, len(header), NumColumns)}
	}

	var res ParseResult
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ParseResult{Err: fmt.Errorf("reading row: %w", err)}
		}
		if len(row) > NumColumns {
			line, _ := cr.FieldPos(0)
			return ParseResult{Err: fmt.Errorf("%w: line %d has %d fields, want %d",
				ErrMalformed, line, len(row), NumColumns)}
		}

		rec, badDate, badAmount := parseRow(row)
		if badDate {
			res.BadDates++
		}
		if badAmount {
			res.BadAmounts++
		}
		res.Records = append(res.Records, rec)
	}

	return res
}

// parseRow maps one CSV row onto a record. Short rows leave trailing fields null.
func parseRow(row []string) (rec model.Record, badDate, badAmount bool) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		return cleanText(row[i])
	}

	rec.StartupName = cell(colStartupName)
	rec.IndustryVertical = cell(colIndustryVertical)
	rec.SubVertical = cell(colSubVertical)
	rec.CityLocation = cell(colCityLocation)
	rec.InvestorsName = cell(colInvestorsName)
	rec.InvestmentType = cell(colInvestmentType)

	if raw := cell(colDate); raw != "" {
		if t, ok := ParseDate(raw); ok {
			rec.Date = t
		} else {
			badDate = true
		}
	}

	if raw := cell(colAmountUSD); raw != "" {
		if v, ok := ParseAmount(raw); ok {
			rec.AmountUSD = &v
		} else {
			badAmount = true
		}
	}

	return rec, badDate, badAmount
}

// cleanText trims whitespace and NFC-normalises s. Whitespace-only cells and
// NA markers come back empty, which the model treats as null.
func cleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || IsNA(s) {
		return ""
	}
	return norm.NFC.String(s)
}

// ParseDate parses a D/M/YYYY date. The result is in UTC at midnight.
// 1/1/0001 is rejected because the zero time stands for a missing date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(parseDateLayout, strings.TrimSpace(s))
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// ParseAmount strips "," group separators and parses the remainder as a
// decimal. NaN and infinities are rejected.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatDate renders t in the file's day/month/year layout, or "" when t is zero.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

// FormatAmount renders an amount without group separators, or "" when nil.
func FormatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
