// Package tariff classifies hourly prices into favorable buy and sell
// windows. It is display-side analysis only; the dispatch loop never reads
// it.
package tariff

import (
	"sort"
	"time"

	"solar-dispatch/internal/model"
)

const (
	// DefaultWindowHours is the rolling-mean smoothing window.
	DefaultWindowHours = 3

	// BuyThresholdFactor marks hours cheaper than this fraction of the
	// global mean as buy windows.
	BuyThresholdFactor = 0.85

	// SellThresholdFactor marks hours dearer than this multiple of the
	// global mean as sell windows.
	SellThresholdFactor = 1.15
)

// Windows is the classification of a price series.
type Windows struct {
	Buy  []time.Time `json:"buy"`
	Sell []time.Time `json:"sell"`

	MeanPrice float64 `json:"mean_price"`

	// Smoothed is the centered rolling mean of the input prices, aligned
	// with the (sorted) input; hours without a full window carry NaN-free
	// partial means.
	Smoothed []model.PricePoint `json:"smoothed,omitempty"`
}

// Classify sorts the series ascending, computes the global mean and a
// centered rolling mean, and splits timestamps into buy windows (price below
// BuyThresholdFactor of the mean) and sell windows (price above
// SellThresholdFactor of the mean). An empty series yields empty windows and
// a zero mean.
func Classify(prices []model.PricePoint, windowHours int) Windows {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	sorted := sortedByTime(prices)

	out := Windows{}
	if len(sorted) == 0 {
		return out
	}

	var sum float64
	for _, p := range sorted {
		sum += p.PriceKWh
	}
	out.MeanPrice = sum / float64(len(sorted))

	out.Smoothed = RollingMean(sorted, windowHours)

	for _, p := range sorted {
		switch {
		case p.PriceKWh < out.MeanPrice*BuyThresholdFactor:
			out.Buy = append(out.Buy, p.Time)
		case p.PriceKWh > out.MeanPrice*SellThresholdFactor:
			out.Sell = append(out.Sell, p.Time)
		}
	}
	return out
}

// RollingMean computes a centered rolling mean over an already sorted series.
// Near the edges the window is truncated to the rows that exist, so the
// output always has the same length as the input.
func RollingMean(sorted []model.PricePoint, windowHours int) []model.PricePoint {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}
	out := make([]model.PricePoint, len(sorted))
	half := (windowHours - 1) / 2
	for i := range sorted {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := lo + windowHours
		if hi > len(sorted) {
			hi = len(sorted)
		}
		var sum float64
		for _, p := range sorted[lo:hi] {
			sum += p.PriceKWh
		}
		out[i] = model.PricePoint{
			Time:     sorted[i].Time,
			PriceKWh: sum / float64(hi-lo),
		}
	}
	return out
}

func sortedByTime(prices []model.PricePoint) []model.PricePoint {
	out := make([]model.PricePoint, len(prices))
	copy(out, prices)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
