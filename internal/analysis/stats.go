// Package analysis provides descriptive statistics over hourly series, used
// by the dashboard-facing API and CLI output.
package analysis

import (
	"math"
	"sort"
)

// SeriesStats are the descriptive statistics of one value series.
type SeriesStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// Describe computes SeriesStats; an empty input returns the zero value.
func Describe(values []float64) SeriesStats {
	if len(values) == 0 {
		return SeriesStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var variance float64
	for _, v := range sorted {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(sorted))

	return SeriesStats{
		Mean:   mean,
		Median: quantile(sorted, 0.5),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: math.Sqrt(variance),
		Q25:    quantile(sorted, 0.25),
		Q75:    quantile(sorted, 0.75),
	}
}

// Trend classifies a series as "rising", "falling" or "flat" by comparing
// the mean of the last window values against the mean of the first window
// values; a ±5% change is the flat band. Returns "insufficient data" when the
// series is shorter than the window.
func Trend(values []float64, window int) string {
	if window <= 0 {
		window = 24
	}
	if len(values) < window {
		return "insufficient data"
	}

	early := mean(values[:window])
	late := mean(values[len(values)-window:])
	if early == 0 {
		return "flat"
	}

	deltaPct := (late - early) / early * 100
	switch {
	case deltaPct > 5:
		return "rising"
	case deltaPct < -5:
		return "falling"
	default:
		return "flat"
	}
}

// CO2SavingsKg estimates avoided emissions for solar kWh that displaced grid
// energy. factor is kg CO2 per grid kWh; 0.25 is a reasonable default for a
// mixed European grid.
func CO2SavingsKg(solarKWh, factor float64) float64 {
	return solarKWh * factor
}

// quantile interpolates linearly on an already sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
