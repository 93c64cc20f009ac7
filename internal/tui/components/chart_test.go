package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSparkline(t *testing.T) {
	assert.Empty(t, Sparkline(nil, "#ffffff"))
	out := Sparkline([]float64{0, 1, 2, 4}, "#ffffff")
	assert.Equal(t, 4, lipgloss.Width(out))
	assert.Contains(t, out, "█")
}

func TestResample(t *testing.T) {
	assert.Equal(t, []float64{1, 2}, Resample([]float64{1, 2}, 5))
	assert.Equal(t, []float64{3, 7}, Resample([]float64{1, 2, 3, 4}, 2))
}

func TestHBarChart(t *testing.T) {
	out := HBarChart([]BarRow{
		{Label: "Bengaluru", Value: 100, Text: "$100"},
		{Label: "Noida", Value: 50, Text: "$50"},
		{Label: "Pune", Value: 0, Text: "$0"},
	}, "#4682B4", 40)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 40)
	}
	assert.Greater(t, strings.Count(lines[0], "█"), strings.Count(lines[1], "█"))
	assert.Zero(t, strings.Count(lines[2], "█"))
}

func TestBarChart(t *testing.T) {
	assert.Empty(t, BarChart(nil, nil, "#ffffff", 40, 8))

	out := BarChart([]float64{1, 5, 3}, []string{"2015", "2016", "2017"}, "#ffffff", 40, 8)
	assert.Contains(t, out, "└")
	assert.Contains(t, out, "2015")

	// Many points on a narrow chart are thinned rather than overflowing.
	vals := make([]float64, 200)
	for i := range vals {
		vals[i] = float64(i)
	}
	for _, l := range strings.Split(BarChart(vals, nil, "#ffffff", 30, 6), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(l), 30)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	pos := 0
	for i := range Tabs {
		w := TabVisualWidth(i)
		assert.Equal(t, i, TabAtX(pos+w/2), "midpoint of tab %d", i)
		pos += w
		if i < len(Tabs)-1 {
			assert.Equal(t, -1, TabAtX(pos), "separator after tab %d", i)
			pos++
		}
	}
	assert.Equal(t, -1, TabAtX(pos+5))
	assert.Equal(t, pos, TabBarWidth())
}

func TestShareBar(t *testing.T) {
	out := ShareBar(0.5, 10)
	assert.Contains(t, out, " 50.0%")
	assert.Equal(t, 5, strings.Count(out, "█"))
	assert.Contains(t, ShareBar(2, 10), "100.0%")
}
