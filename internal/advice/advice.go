// Package advice turns a simulation result into short operator-facing
// recommendation lines. Presentation only; nothing here feeds back into the
// dispatch loop.
package advice

import (
	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/model"
)

const (
	goodBenefitThreshold = 50.0
	highCycleThreshold   = 1.5
	lowCycleThreshold    = 0.5
	highSellRatio        = 0.3
	priceSpikeFactor     = 1.3
)

// Recommendations derives advisory messages from a finished run and,
// optionally, the upcoming price series.
func Recommendations(res *dispatch.Result, futurePrices []model.PricePoint) []string {
	var out []string
	if res == nil {
		return out
	}

	switch {
	case res.TotalBenefit < 0:
		out = append(out, "The simulation shows a net loss. Consider a larger battery capacity.")
	case res.TotalBenefit > goodBenefitThreshold:
		out = append(out, "Excellent energy management. The system is well tuned.")
	}

	switch {
	case res.Cycles > highCycleThreshold:
		out = append(out, "Heavy battery cycling. This maximizes savings but accelerates wear.")
	case res.Cycles < lowCycleThreshold && len(res.Trace) > 0:
		out = append(out, "The battery is barely used. Consider adjusting the charge/discharge thresholds.")
	}

	if ratio := SellRatio(res.Trace); ratio > highSellRatio {
		out = append(out, "High share of grid exports. Good use of price peaks.")
	}

	if len(futurePrices) > 0 {
		current := futurePrices[0].PriceKWh
		max := current
		for _, p := range futurePrices {
			if p.PriceKWh > max {
				max = p.PriceKWh
			}
		}
		if max > current*priceSpikeFactor {
			out = append(out, "Price spikes expected soon. Keep the battery charged to sell into them.")
		}
	}

	if len(out) == 0 {
		out = append(out, "System operating within normal parameters.")
	}
	return out
}

// SellRatio is the fraction of hours resolved as grid exports.
func SellRatio(trace []dispatch.DecisionRecord) float64 {
	if len(trace) == 0 {
		return 0
	}
	var sells int
	for _, r := range trace {
		if r.Decision == model.DecisionSell {
			sells++
		}
	}
	return float64(sells) / float64(len(trace))
}
