package model

import "time"

// SummaryStats holds the top-level aggregate across a dataset.
type SummaryStats struct {
	Records       int `json:"records"`
	Startups      int `json:"startups"`
	Industries    int `json:"industries"`
	Cities        int `json:"cities"`
	Investors     int `json:"investors"`
	DatedRecords  int `json:"dated_records"`
	FundedRecords int `json:"funded_records"`

	TotalUSD  float64 `json:"total_usd"`
	MeanUSD   float64 `json:"mean_usd"`
	MedianUSD float64 `json:"median_usd"`
	MaxUSD    float64 `json:"max_usd"`

	FirstDate time.Time `json:"first_date"`
	LastDate  time.Time `json:"last_date"`
}

// IndustryStats holds deal count and invested amount for one industry vertical.
type IndustryStats struct {
	Industry  string  `json:"industry"`
	Deals     int     `json:"deals"`
	AmountUSD float64 `json:"amount_usd"`
}

// CityStats holds deal count and invested amount for one city.
type CityStats struct {
	City      string  `json:"city"`
	Deals     int     `json:"deals"`
	AmountUSD float64 `json:"amount_usd"`
}

// YearStats holds per-calendar-year startup counts.
type YearStats struct {
	Year      int     `json:"year"`
	Startups  int     `json:"startups"`
	AmountUSD float64 `json:"amount_usd"`
}

// InvestorStats holds how often an investors string appears.
type InvestorStats struct {
	Investor    string `json:"investor"`
	Investments int    `json:"investments"`
}

// DailyPoint is the summed funding on one calendar day.
type DailyPoint struct {
	Date      time.Time `json:"date"`
	AmountUSD float64   `json:"amount_usd"`
}
