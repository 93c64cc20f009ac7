package chart

import (
	"fmt"
	"io"
	"strconv"

	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/model"
	"github.com/theirongolddev/fundboard/internal/pipeline"
)

// TopN is how many cities and investors the ranked charts show.
const TopN = 10

// Render draws chart kind for the filtered dataset. The forecast chart is
// fitted on full, the unfiltered dataset.
func Render(w io.Writer, kind Kind, filtered, full model.Dataset, horizon int) error {
	switch kind {
	case KindIndustries:
		stats := pipeline.AggregateIndustries(filtered)
		labels := make([]string, len(stats))
		vals := make([]float64, len(stats))
		for i, s := range stats {
			labels[i], vals[i] = s.Industry, s.AmountUSD
		}
		return Bars(w, "Investment by Industry", "Amount (USD)", labels, vals)

	case KindCities:
		stats := pipeline.AggregateCities(filtered, TopN)
		labels := make([]string, len(stats))
		vals := make([]float64, len(stats))
		for i, s := range stats {
			labels[i], vals[i] = s.City, s.AmountUSD
		}
		return Bars(w, "Top Cities by Investment", "Amount (USD)", labels, vals)

	case KindYears:
		stats := pipeline.AggregateYears(filtered)
		labels := make([]string, len(stats))
		vals := make([]float64, len(stats))
		for i, s := range stats {
			labels[i], vals[i] = strconv.Itoa(s.Year), float64(s.Startups)
		}
		return Bars(w, "Startup Growth Over the Years", "Startups", labels, vals)

	case KindInvestors:
		stats := pipeline.AggregateInvestors(filtered, TopN)
		labels := make([]string, len(stats))
		vals := make([]float64, len(stats))
		for i, s := range stats {
			labels[i], vals[i] = s.Investor, float64(s.Investments)
		}
		return Bars(w, "Top Investors", "Investments", labels, vals)

	case KindDaily:
		return Line(w, "Investment Over Time", "Amount (USD)", pipeline.AggregateDaily(filtered))

	case KindForecast:
		series := pipeline.AggregateDaily(full)
		res, err := forecast.LinearTrend{}.Forecast(series, horizon)
		if err != nil {
			return err
		}
		return Forecast(w, series, res)
	}

	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
