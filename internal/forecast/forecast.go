// Package forecast projects the daily funding series forward.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/theirongolddev/fundboard/internal/model"
)

// DefaultHorizon is the number of daily periods projected when none is given.
const DefaultHorizon = 365

// MaxHorizon bounds the projection length, about ten years of days.
const MaxHorizon = 3650

// z-score for a 95% band.
const bandZ = 1.96

// ErrInsufficientData is returned when the series has fewer than two dated points.
var ErrInsufficientData = errors.New("not enough data for market prediction")

// ErrHorizonTooLarge is returned for a horizon above MaxHorizon.
var ErrHorizonTooLarge = errors.New("forecast horizon too large")

const day = 24 * time.Hour

// Point is one fitted or projected value with its uncertainty band.
type Point struct {
	Date  time.Time `json:"date" yaml:"date"`
	Value float64   `json:"value" yaml:"value"`
	Lower float64   `json:"lower" yaml:"lower"`
	Upper float64   `json:"upper" yaml:"upper"`
}

// Result holds the in-sample fit followed by the projection.
type Result struct {
	History    []Point `json:"history" yaml:"history"`
	Projection []Point `json:"projection" yaml:"projection"`
	Slope      float64 `json:"slope_per_day" yaml:"slope_per_day"`
	Intercept  float64 `json:"intercept" yaml:"intercept"`
	RSquared   float64 `json:"r_squared" yaml:"r_squared"`
}

// Forecaster projects a daily series horizon days past its last point.
type Forecaster interface {
	Forecast(series []model.DailyPoint, horizon int) (Result, error)
}

// LinearTrend fits amount against day offset with ordinary least squares.
type LinearTrend struct{}

// Forecast implements Forecaster. series must be sorted by date; a
// non-positive horizon falls back to DefaultHorizon.
func (LinearTrend) Forecast(series []model.DailyPoint, horizon int) (Result, error) {
	if horizon > MaxHorizon {
		return Result{}, fmt.Errorf("%w: %d days, max %d", ErrHorizonTooLarge, horizon, MaxHorizon)
	}
	if len(series) < 2 {
		return Result{}, ErrInsufficientData
	}
	if horizon <= 0 {
		horizon = DefaultHorizon
	}

	origin := series[0].Date
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = dayOffset(origin, p.Date)
		ys[i] = p.AmountUSD
	}
	if xs[0] == xs[len(xs)-1] {
		return Result{}, ErrInsufficientData
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	residuals := make([]float64, len(xs))
	for i := range xs {
		residuals[i] = ys[i] - (alpha + beta*xs[i])
	}
	sigma := stat.StdDev(residuals, nil)
	if math.IsNaN(sigma) {
		sigma = 0
	}
	band := bandZ * sigma

	res := Result{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  stat.RSquared(xs, ys, nil, alpha, beta),
		History:   make([]Point, len(xs)),
	}
	if math.IsNaN(res.RSquared) {
		res.RSquared = 0
	}

	for i, x := range xs {
		v := alpha + beta*x
		res.History[i] = Point{Date: series[i].Date, Value: v, Lower: v - band, Upper: v + band}
	}

	last := series[len(series)-1].Date
	lastX := xs[len(xs)-1]
	res.Projection = make([]Point, horizon)
	for i := 1; i <= horizon; i++ {
		x := lastX + float64(i)
		v := alpha + beta*x
		res.Projection[i-1] = Point{
			Date:  last.AddDate(0, 0, i),
			Value: v,
			Lower: v - band,
			Upper: v + band,
		}
	}

	return res, nil
}

func dayOffset(origin, t time.Time) float64 {
	return math.Round(float64(t.Sub(origin)) / float64(day))
}
