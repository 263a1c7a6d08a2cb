// Demo runs a full week of synthetic data through the dispatch simulator and
// prints everything a first-time user would want to see: the summary, the
// tariff windows, the investment figures and the recommendations.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"solar-dispatch/internal/advice"
	"solar-dispatch/internal/analysis"
	"solar-dispatch/internal/config"
	"solar-dispatch/internal/data"
	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/finance"
	"solar-dispatch/internal/tariff"
)

func main() {
	cfg := config.Defaults()

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	week := data.GenerateExampleWeek(start, rand.New(rand.NewSource(42)))

	sim, err := dispatch.New(cfg.Battery.ToModelParams(), dispatch.DefaultPolicy())
	if err != nil {
		log.Fatalf("configure simulator: %v", err)
	}

	res := sim.Run(week.ProductionPoints(), week.Prices, cfg.Load.BaseLoadKWh)

	fmt.Println("=== Simulation (one synthetic week) ===")
	fmt.Printf("total benefit:    %.2f EUR\n", res.TotalBenefit)
	fmt.Printf("daily benefit:    %.2f EUR\n", res.MeanDailyBenefit)
	fmt.Printf("energy sold:      %.2f kWh\n", res.EnergySoldKWh)
	fmt.Printf("energy bought:    %.2f kWh\n", res.EnergyBoughtKWh)
	fmt.Printf("final charge:     %.2f kWh\n", res.FinalChargeKWh)
	fmt.Printf("battery cycles:   %.2f\n", res.Cycles)

	fmt.Println("\n=== Price analysis ===")
	values := make([]float64, len(week.Prices))
	for i, p := range week.Prices {
		values[i] = p.PriceKWh
	}
	stats := analysis.Describe(values)
	fmt.Printf("price mean/median: %.4f / %.4f EUR/kWh\n", stats.Mean, stats.Median)
	fmt.Printf("price min..max:    %.4f .. %.4f EUR/kWh\n", stats.Min, stats.Max)
	fmt.Printf("price trend:       %s\n", analysis.Trend(values, 24))

	w := tariff.Classify(week.Prices, tariff.DefaultWindowHours)
	fmt.Printf("buy windows:       %d hours below %.4f\n", len(w.Buy), w.MeanPrice*tariff.BuyThresholdFactor)
	fmt.Printf("sell windows:      %d hours above %.4f\n", len(w.Sell), w.MeanPrice*tariff.SellThresholdFactor)

	fmt.Println("\n=== Investment ===")
	roi, err := finance.ROI(cfg.Finance.Investment, cfg.Finance.AnnualBenefit, cfg.Finance.LifetimeYears)
	if err != nil {
		log.Fatalf("roi: %v", err)
	}
	fmt.Printf("lifetime benefit: %.2f EUR\n", roi.TotalBenefit)
	fmt.Printf("roi:              %.2f%%\n", roi.ROIPercent)
	fmt.Printf("payback:          %s years\n", roi.PaybackYearsString())

	var solarKWh float64
	for _, p := range week.Production {
		solarKWh += p.ProductionKWh
	}
	fmt.Printf("co2 avoided:      %.1f kg (week)\n", analysis.CO2SavingsKg(solarKWh, 0.25))

	fmt.Println("\n=== Recommendations ===")
	for _, line := range advice.Recommendations(res, week.Prices) {
		fmt.Printf("- %s\n", line)
	}

	const out = "demo_trace.csv"
	if err := dispatch.WriteTraceCSV(out, res.Trace); err != nil {
		log.Fatalf("write trace: %v", err)
	}
	fmt.Printf("\nwrote hourly trace to %s\n", out)
}
