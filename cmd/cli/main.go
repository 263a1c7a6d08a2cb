package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"solar-dispatch/internal/advice"
	"solar-dispatch/internal/config"
	"solar-dispatch/internal/data"
	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/finance"
	"solar-dispatch/internal/forecast"
	"solar-dispatch/internal/store"
	"solar-dispatch/internal/tariff"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "windows":
		cmdWindows(os.Args[2:])
	case "roi":
		cmdROI(os.Args[2:])
	case "seed":
		cmdSeed(os.Args[2:])
	case "train":
		cmdTrain(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config config.yaml --production production.csv --prices prices.csv --out trace.csv")
	fmt.Println("  cli windows --prices prices.csv")
	fmt.Println("  cli roi --investment 15000 --annual-benefit 1200 --years 25")
	fmt.Println("  cli seed --db data/solar-dispatch.db")
	fmt.Println("  cli train --db data/solar-dispatch.db --out model.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate writes a CSV trace with decision=charge/discharge/sell/buy per hour")
	fmt.Println("  - windows classifies hours into buy/sell windows against the global mean price")
	fmt.Println("  - seed loads a synthetic example week into the store")
	fmt.Println("  - train fits the yield estimator on stored weather/production history")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	productionPath := fs.String("production", "", "Path to production CSV (time,production_kwh)")
	pricesPath := fs.String("prices", "", "Path to prices CSV (time,price_kwh)")
	outPath := fs.String("out", "trace.csv", "Output CSV path for the trace")
	_ = fs.Parse(args)

	if *cfgPath == "" || *productionPath == "" || *pricesPath == "" {
		fmt.Println("--config, --production and --prices are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal("load config: %v", err)
	}

	production, err := data.LoadProductionCSV(*productionPath)
	if err != nil {
		fatal("load production: %v", err)
	}
	prices, err := data.LoadPricesCSV(*pricesPath)
	if err != nil {
		fatal("load prices: %v", err)
	}

	sim, err := dispatch.New(cfg.Battery.ToModelParams(), cfg.Policy.ToPolicy())
	if err != nil {
		fatal("configure simulator: %v", err)
	}

	res := sim.Run(production, prices, cfg.Load.BaseLoadKWh)
	printSummary(res)
	for _, line := range advice.Recommendations(res, prices) {
		fmt.Printf("  - %s\n", line)
	}

	if err := dispatch.WriteTraceCSV(*outPath, res.Trace); err != nil {
		fatal("write trace: %v", err)
	}
	fmt.Printf("wrote %d rows to %s\n", len(res.Trace), *outPath)
}

func cmdWindows(args []string) {
	fs := flag.NewFlagSet("windows", flag.ExitOnError)
	pricesPath := fs.String("prices", "", "Path to prices CSV (time,price_kwh)")
	window := fs.Int("window", tariff.DefaultWindowHours, "Rolling mean window in hours")
	_ = fs.Parse(args)

	if *pricesPath == "" {
		fmt.Println("--prices is required")
		os.Exit(2)
	}

	prices, err := data.LoadPricesCSV(*pricesPath)
	if err != nil {
		fatal("load prices: %v", err)
	}

	w := tariff.Classify(prices, *window)
	fmt.Printf("mean price:   %.4f\n", w.MeanPrice)
	fmt.Printf("buy windows:  %d hours\n", len(w.Buy))
	fmt.Printf("sell windows: %d hours\n", len(w.Sell))
	for _, t := range w.Buy {
		fmt.Printf("  buy  %s\n", t.Format(time.RFC3339))
	}
	for _, t := range w.Sell {
		fmt.Printf("  sell %s\n", t.Format(time.RFC3339))
	}
}

func cmdROI(args []string) {
	fs := flag.NewFlagSet("roi", flag.ExitOnError)
	investment := fs.Float64("investment", 15000, "Initial investment")
	annual := fs.Float64("annual-benefit", 1200, "Annual benefit")
	years := fs.Int("years", 25, "Installation lifetime in years")
	_ = fs.Parse(args)

	res, err := finance.ROI(*investment, *annual, *years)
	if err != nil {
		fatal("roi: %v", err)
	}
	fmt.Printf("total benefit: %.2f\n", res.TotalBenefit)
	fmt.Printf("roi:           %.2f%%\n", res.ROIPercent)
	fmt.Printf("payback:       %s years\n", res.PaybackYearsString())
	fmt.Printf("approx irr:    %.2f%%\n", res.ApproxIRRPercent)
}

func cmdSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dbPath := fs.String("db", "data/solar-dispatch.db", "Path to the SQLite store")
	start := fs.String("start", "", "Week start (YYYY-MM-DD), default: start of last week")
	_ = fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		fatal("open store: %v", err)
	}

	from := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -7)
	if *start != "" {
		from, err = time.Parse("2006-01-02", *start)
		if err != nil {
			fatal("invalid --start: %v", err)
		}
	}

	week := data.GenerateExampleWeek(from, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err := data.SeedStore(st, week); err != nil {
		fatal("seed store: %v", err)
	}
	fmt.Printf("seeded %d hours starting %s into %s\n", len(week.Prices), from.Format("2006-01-02"), *dbPath)
}

func cmdTrain(args []string) {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	dbPath := fs.String("db", "data/solar-dispatch.db", "Path to the SQLite store")
	outPath := fs.String("out", "model.json", "Output path for the model artifact")
	fromStr := fs.String("from", "", "History start (YYYY-MM-DD), default: 90 days ago")
	toStr := fs.String("to", "", "History end (YYYY-MM-DD), default: now")
	_ = fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		fatal("open store: %v", err)
	}

	to := time.Now().UTC()
	if *toStr != "" {
		to, err = time.Parse("2006-01-02", *toStr)
		if err != nil {
			fatal("invalid --to: %v", err)
		}
	}
	from := to.AddDate(0, 0, -90)
	if *fromStr != "" {
		from, err = time.Parse("2006-01-02", *fromStr)
		if err != nil {
			fatal("invalid --from: %v", err)
		}
	}

	samples, err := st.TrainingSamples(from, to)
	if err != nil {
		fatal("load training samples: %v", err)
	}

	model, err := forecast.Fit(samples)
	if err != nil {
		fatal("fit model: %v", err)
	}
	if err := model.Save(*outPath); err != nil {
		fatal("save model: %v", err)
	}

	fmt.Printf("fitted on %d samples (%s .. %s)\n", model.Metrics.NSamples,
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	fmt.Printf("mae: %.4f kWh  r2: %.4f\n", model.Metrics.MAE, model.Metrics.R2)
	fmt.Printf("wrote model to %s\n", *outPath)
}

func printSummary(res *dispatch.Result) {
	fmt.Printf("hours:          %d\n", len(res.Trace))
	fmt.Printf("total benefit:  %.2f\n", res.TotalBenefit)
	fmt.Printf("daily benefit:  %.2f\n", res.MeanDailyBenefit)
	fmt.Printf("energy sold:    %.2f kWh\n", res.EnergySoldKWh)
	fmt.Printf("energy bought:  %.2f kWh\n", res.EnergyBoughtKWh)
	fmt.Printf("final charge:   %.2f kWh\n", res.FinalChargeKWh)
	fmt.Printf("battery cycles: %.2f\n", res.Cycles)
	if math.Signbit(res.TotalBenefit) {
		fmt.Println("note: the run ended at a net loss")
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
