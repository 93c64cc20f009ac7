// Package model defines domain types for fundboard records and aggregates.
package model

import "time"

// DateLayout is the day/month/year layout used by the funding CSV.
const DateLayout = "02/01/2006"

// Record is one funding round. Empty strings, a zero Date and a nil AmountUSD
// stand for missing values.
type Record struct {
	Date             time.Time
	StartupName      string
	IndustryVertical string
	SubVertical      string
	CityLocation     string
	InvestorsName    string // free text, may list several investors
	InvestmentType   string
	AmountUSD        *float64
}

// HasDate reports whether the record carries a parsed date.
func (r Record) HasDate() bool { return !r.Date.IsZero() }

// Year returns the calendar year of the record's date and false when the date is missing.
func (r Record) Year() (int, bool) {
	if r.Date.IsZero() {
		return 0, false
	}
	return r.Date.Year(), true
}

// Amount returns the amount in USD, or zero when it is missing.
func (r Record) Amount() float64 {
	if r.AmountUSD == nil {
		return 0
	}
	return *r.AmountUSD
}

// Equal compares two records field by field, including null-ness.
func (r Record) Equal(o Record) bool {
	if !r.Date.Equal(o.Date) {
		return false
	}
	if r.StartupName != o.StartupName ||
		r.IndustryVertical != o.IndustryVertical ||
		r.SubVertical != o.SubVertical ||
		r.CityLocation != o.CityLocation ||
		r.InvestorsName != o.InvestorsName ||
		r.InvestmentType != o.InvestmentType {
		return false
	}
	switch {
	case r.AmountUSD == nil && o.AmountUSD == nil:
		return true
	case r.AmountUSD == nil || o.AmountUSD == nil:
		return false
	default:
		return *r.AmountUSD == *o.AmountUSD
	}
}

// Float returns a pointer to v. Handy for building records in code.
func Float(v float64) *float64 { return &v }
