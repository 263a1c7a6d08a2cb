package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	stats := Describe([]float64{4, 1, 3, 2})

	assert.InDelta(t, 2.5, stats.Mean, 1e-9)
	assert.InDelta(t, 2.5, stats.Median, 1e-9)
	assert.InDelta(t, 1, stats.Min, 1e-9)
	assert.InDelta(t, 4, stats.Max, 1e-9)
	assert.InDelta(t, 1.118033988749895, stats.StdDev, 1e-9)
	assert.InDelta(t, 1.75, stats.Q25, 1e-9)
	assert.InDelta(t, 3.25, stats.Q75, 1e-9)
}

func TestDescribe_Empty(t *testing.T) {
	assert.Equal(t, SeriesStats{}, Describe(nil))
}

func TestDescribe_SingleValue(t *testing.T) {
	stats := Describe([]float64{7})
	assert.InDelta(t, 7, stats.Median, 1e-9)
	assert.InDelta(t, 7, stats.Q25, 1e-9)
	assert.Zero(t, stats.StdDev)
}

func TestTrend(t *testing.T) {
	rising := make([]float64, 48)
	falling := make([]float64, 48)
	flat := make([]float64, 48)
	for i := range rising {
		rising[i] = 10 + float64(i)
		falling[i] = 60 - float64(i)
		flat[i] = 10
	}

	assert.Equal(t, "rising", Trend(rising, 24))
	assert.Equal(t, "falling", Trend(falling, 24))
	assert.Equal(t, "flat", Trend(flat, 24))
	assert.Equal(t, "insufficient data", Trend(flat[:10], 24))

	// window <= 0 falls back to 24
	assert.Equal(t, "rising", Trend(rising, 0))
}

func TestCO2SavingsKg(t *testing.T) {
	assert.InDelta(t, 25, CO2SavingsKg(100, 0.25), 1e-9)
	assert.Zero(t, CO2SavingsKg(0, 0.25))
}
