// Package data loads and generates input series for the simulator.
package data

import (
	"math"
	"math/rand"
	"time"

	"solar-dispatch/internal/model"
	"solar-dispatch/internal/store"
)

// hourlyPriceCurve is a realistic daily EUR/kWh shape: cheap at night, a
// morning ramp and an evening peak.
var hourlyPriceCurve = [24]float64{
	0.10, 0.09, 0.08, 0.08, 0.09, 0.12, 0.15, 0.18,
	0.16, 0.14, 0.13, 0.12, 0.11, 0.12, 0.13, 0.14,
	0.15, 0.18, 0.22, 0.20, 0.18, 0.15, 0.12, 0.11,
}

// ExampleWeek holds one week of synthetic hourly inputs, enough to exercise a
// full simulation without any external data source.
type ExampleWeek struct {
	Prices     []model.PricePoint
	Production []store.ProductionRow
	Weather    []store.WeatherRow
}

// GenerateExampleWeek builds 168 hours of synthetic prices, solar production
// and weather starting at start. The rng makes the noise reproducible in
// tests; pass rand.New(rand.NewSource(...)).
func GenerateExampleWeek(start time.Time, rng *rand.Rand) ExampleWeek {
	const hours = 7 * 24
	var w ExampleWeek

	for i := 0; i < hours; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		h := i % 24

		price := hourlyPriceCurve[h] + rng.Float64()*0.04 - 0.02
		w.Prices = append(w.Prices, model.PricePoint{Time: ts, PriceKWh: price})

		daylight := math.Sin(float64(h-6) * math.Pi / 12)
		production := math.Max(0, 5*daylight+rng.Float64()-0.5)
		irradiance := math.Max(0, 800*daylight+rng.Float64()*200-100)
		w.Production = append(w.Production, store.ProductionRow{
			Time:          ts,
			ProductionKWh: production,
			IrradianceWm2: irradiance,
		})

		w.Weather = append(w.Weather, store.WeatherRow{
			Time:          ts,
			TemperatureC:  20 + 8*daylight + rng.Float64()*4 - 2,
			CloudCoverPct: float64(rng.Intn(100)),
			HumidityPct:   float64(30 + rng.Intn(50)),
		})
	}
	return w
}

// ProductionPoints converts the generated production rows to the simulator's
// input shape.
func (w ExampleWeek) ProductionPoints() []model.ProductionPoint {
	out := make([]model.ProductionPoint, len(w.Production))
	for i, r := range w.Production {
		out[i] = model.ProductionPoint{Time: r.Time, ProductionKWh: r.ProductionKWh}
	}
	return out
}

// SeedStore loads the example week into a store.
func SeedStore(s *store.Store, w ExampleWeek) error {
	if err := s.UpsertPrices(w.Prices); err != nil {
		return err
	}
	if err := s.UpsertProduction(w.Production); err != nil {
		return err
	}
	return s.UpsertWeather(w.Weather)
}
