// Package pipeline loads funding datasets, filters them and computes the
// aggregate views shown by every front end.
package pipeline

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/theirongolddev/fundboard/internal/model"
)

// Summarize computes top-level statistics for ds.
func Summarize(ds model.Dataset) model.SummaryStats {
	var stats model.SummaryStats

	startups := make(map[string]struct{})
	industries := make(map[string]struct{})
	cities := make(map[string]struct{})
	investors := make(map[string]struct{})
	var amounts []float64

	ds.Each(func(_ int, r model.Record) bool {
		stats.Records++
		if r.StartupName != "" {
			startups[r.StartupName] = struct{}{}
		}
		if r.IndustryVertical != "" {
			industries[r.IndustryVertical] = struct{}{}
		}
		if r.CityLocation != "" {
			cities[r.CityLocation] = struct{}{}
		}
		if r.InvestorsName != "" {
			investors[r.InvestorsName] = struct{}{}
		}
		if r.HasDate() {
			stats.DatedRecords++
			if stats.FirstDate.IsZero() || r.Date.Before(stats.FirstDate) {
				stats.FirstDate = r.Date
			}
			if r.Date.After(stats.LastDate) {
				stats.LastDate = r.Date
			}
		}
		if r.AmountUSD != nil {
			stats.FundedRecords++
			amounts = append(amounts, *r.AmountUSD)
		}
		return true
	})

	stats.Startups = len(startups)
	stats.Industries = len(industries)
	stats.Cities = len(cities)
	stats.Investors = len(investors)

	if len(amounts) > 0 {
		stats.TotalUSD = floats.Sum(amounts)
		stats.MeanUSD = stat.Mean(amounts, nil)
		stats.MaxUSD = floats.Max(amounts)
		stats.MedianUSD = median(amounts)
	}

	return stats
}

// median sorts vals in place and returns the middle value, averaging the two
// middle values for even lengths.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}

// AggregateIndustries sums funding per industry vertical, sorted by amount
// descending then name.
func AggregateIndustries(ds model.Dataset) []model.IndustryStats {
	indMap := make(map[string]*model.IndustryStats)

	ds.Each(func(_ int, r model.Record) bool {
		if r.IndustryVertical == "" {
			return true
		}
		is, ok := indMap[r.IndustryVertical]
		if !ok {
			is = &model.IndustryStats{Industry: r.IndustryVertical}
			indMap[r.IndustryVertical] = is
		}
		is.Deals++
		is.AmountUSD += r.Amount()
		return true
	})

	out := make([]model.IndustryStats, 0, len(indMap))
	for _, is := range indMap {
		out = append(out, *is)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AmountUSD != out[j].AmountUSD {
			return out[i].AmountUSD > out[j].AmountUSD
		}
		return out[i].Industry < out[j].Industry
	})
	return out
}

// AggregateCities sums funding per city, sorted by amount descending. A
// positive limit keeps only the first limit cities.
func AggregateCities(ds model.Dataset, limit int) []model.CityStats {
	cityMap := make(map[string]*model.CityStats)

	ds.Each(func(_ int, r model.Record) bool {
		if r.CityLocation == "" {
			return true
		}
		cs, ok := cityMap[r.CityLocation]
		if !ok {
			cs = &model.CityStats{City: r.CityLocation}
			cityMap[r.CityLocation] = cs
		}
		cs.Deals++
		cs.AmountUSD += r.Amount()
		return true
	})

	out := make([]model.CityStats, 0, len(cityMap))
	for _, cs := range cityMap {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AmountUSD != out[j].AmountUSD {
			return out[i].AmountUSD > out[j].AmountUSD
		}
		return out[i].City < out[j].City
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AggregateYears counts records per calendar year, ascending. Undated records
// are skipped.
func AggregateYears(ds model.Dataset) []model.YearStats {
	yearMap := make(map[int]*model.YearStats)

	ds.Each(func(_ int, r model.Record) bool {
		y, ok := r.Year()
		if !ok {
			return true
		}
		ys, found := yearMap[y]
		if !found {
			ys = &model.YearStats{Year: y}
			yearMap[y] = ys
		}
		ys.Startups++
		ys.AmountUSD += r.Amount()
		return true
	})

	out := make([]model.YearStats, 0, len(yearMap))
	for _, ys := range yearMap {
		out = append(out, *ys)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// AggregateInvestors counts occurrences of each investors string, most
// frequent first. A positive limit keeps only the first limit entries.
func AggregateInvestors(ds model.Dataset, limit int) []model.InvestorStats {
	counts := make(map[string]int)

	ds.Each(func(_ int, r model.Record) bool {
		if r.InvestorsName != "" {
			counts[r.InvestorsName]++
		}
		return true
	})

	out := make([]model.InvestorStats, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.InvestorStats{Investor: name, Investments: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Investments != out[j].Investments {
			return out[i].Investments > out[j].Investments
		}
		return out[i].Investor < out[j].Investor
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AggregateDaily sums funding per calendar day, oldest first. Undated records
// are skipped; records without an amount contribute zero.
func AggregateDaily(ds model.Dataset) []model.DailyPoint {
	dayMap := make(map[int64]*model.DailyPoint)

	ds.Each(func(_ int, r model.Record) bool {
		if !r.HasDate() {
			return true
		}
		key := r.Date.Unix()
		dp, ok := dayMap[key]
		if !ok {
			dp = &model.DailyPoint{Date: r.Date}
			dayMap[key] = dp
		}
		dp.AmountUSD += r.Amount()
		return true
	})

	out := make([]model.DailyPoint, 0, len(dayMap))
	for _, dp := range dayMap {
		out = append(out, *dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
