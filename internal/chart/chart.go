// Package chart renders aggregate views as PNG images.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/theirongolddev/fundboard/internal/forecast"
	"github.com/theirongolddev/fundboard/internal/model"
)

// Kind names a renderable chart.
type Kind string

const (
	KindIndustries Kind = "industries"
	KindCities     Kind = "cities"
	KindYears      Kind = "years"
	KindInvestors  Kind = "investors"
	KindDaily      Kind = "daily"
	KindForecast   Kind = "forecast"
)

// Kinds lists every chart kind in display order.
var Kinds = []Kind{KindIndustries, KindCities, KindYears, KindInvestors, KindDaily, KindForecast}

var (
	// ErrUnknownKind is returned by ParseKind.
	ErrUnknownKind = errors.New("unknown chart kind")
	// ErrNoData is returned when there is nothing to plot.
	ErrNoData = errors.New("no data to plot")
)

// ParseKind validates a chart kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var (
	accent = color.RGBA{R: 0x60, G: 0xfc, B: 0x37, A: 0xff}
	barFg  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bandFg = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// Width and Height set the PNG size.
var (
	Width  = 12 * vg.Inch
	Height = 7 * vg.Inch
)

// Bars renders labelled bar values as PNG into w.
func Bars(w io.Writer, title, yLabel string, labels []string, values []float64) error {
	if len(values) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return fmt.Errorf("building bars: %w", err)
	}
	bars.Color = barFg
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.Add(plotter.NewGrid())

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0

	return save(w, p)
}

// Line renders a date series as PNG into w.
func Line(w io.Writer, title, yLabel string, pts []model.DailyPoint) error {
	if len(pts) == 0 {
		return ErrNoData
	}

	p := newTimePlot(title, yLabel)
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i].X = float64(pt.Date.Unix())
		xys[i].Y = pt.AmountUSD
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("building line: %w", err)
	}
	line.Color = barFg
	p.Add(line)

	return save(w, p)
}

// Forecast renders the observed series, the fitted trend and its band.
func Forecast(w io.Writer, observed []model.DailyPoint, res forecast.Result) error {
	if len(observed) == 0 {
		return ErrNoData
	}

	p := newTimePlot("Future Investment Trend", "Amount (USD)")

	obs := make(plotter.XYs, len(observed))
	for i, pt := range observed {
		obs[i].X = float64(pt.Date.Unix())
		obs[i].Y = pt.AmountUSD
	}
	scatter, err := plotter.NewScatter(obs)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	scatter.GlyphStyle.Color = barFg
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	fitted := append(append([]forecast.Point{}, res.History...), res.Projection...)
	mid := make(plotter.XYs, len(fitted))
	lo := make(plotter.XYs, len(fitted))
	hi := make(plotter.XYs, len(fitted))
	for i, pt := range fitted {
		x := float64(pt.Date.Unix())
		mid[i] = plotter.XY{X: x, Y: pt.Value}
		lo[i] = plotter.XY{X: x, Y: pt.Lower}
		hi[i] = plotter.XY{X: x, Y: pt.Upper}
	}

	trend, err := plotter.NewLine(mid)
	if err != nil {
		return fmt.Errorf("building trend: %w", err)
	}
	trend.Color = accent
	trend.Width = vg.Points(2)
	p.Add(trend)

	for _, band := range []plotter.XYs{lo, hi} {
		l, err := plotter.NewLine(band)
		if err != nil {
			return fmt.Errorf("building band: %w", err)
		}
		l.Color = bandFg
		l.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(l)
	}
	p.Legend.Add("observed", scatter)
	p.Legend.Add("trend", trend)
	p.Legend.Top = true

	return save(w, p)
}

func newTimePlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = yLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())
	return p
}

func save(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}
	return nil
}
