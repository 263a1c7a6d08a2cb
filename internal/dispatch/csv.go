package dispatch

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteTraceCSV writes the per-hour trace of a run to path.
func WriteTraceCSV(path string, trace []DecisionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"time",
		"production_kwh",
		"load_kwh",
		"price_kwh",
		"charge_kwh",
		"decision",
		"quantity_kwh",
		"benefit",
		"cum_benefit",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range trace {
		row := []string{
			fmtTime(r.Time),
			fmtFloat(r.ProductionKWh),
			fmtFloat(r.LoadKWh),
			fmtFloat(r.PriceKWh),
			fmtFloat(r.ChargeKWh),
			string(r.Decision),
			fmtFloat(r.QuantityKWh),
			fmtFloat(r.Benefit),
			fmtFloat(r.CumBenefit),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
