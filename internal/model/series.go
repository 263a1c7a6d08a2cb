package model

import (
	"sort"
	"time"
)

// PricePoint is one hour of grid buy price.
// Prices are in currency per kWh (e.g. EUR/kWh).
type PricePoint struct {
	Time     time.Time `json:"time"`
	PriceKWh float64   `json:"price_kwh"`
}

// ProductionPoint is one hour of solar production.
type ProductionPoint struct {
	Time          time.Time `json:"time"`
	ProductionKWh float64   `json:"production_kwh"`
}

// Observation is one joined input row for the dispatch simulator:
// hour-aligned timestamp, solar production and the grid buy price.
type Observation struct {
	Time          time.Time `json:"time"`
	ProductionKWh float64   `json:"production_kwh"`
	PriceKWh      float64   `json:"price_kwh"`
}

// AlignSeries inner-joins a production series and a price series on timestamp
// and returns the rows sorted ascending. Hours present in only one of the two
// series are dropped silently; callers that need to know about gaps should
// compare lengths themselves. Two series with no common timestamps yield an
// empty slice, which the simulator treats as a benign empty run.
func AlignSeries(production []ProductionPoint, prices []PricePoint) []Observation {
	byTime := make(map[int64]float64, len(prices))
	for _, p := range prices {
		byTime[p.Time.Unix()] = p.PriceKWh
	}

	out := make([]Observation, 0, len(production))
	for _, p := range production {
		price, ok := byTime[p.Time.Unix()]
		if !ok {
			continue
		}
		out = append(out, Observation{
			Time:          p.Time,
			ProductionKWh: p.ProductionKWh,
			PriceKWh:      price,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
