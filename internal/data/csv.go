package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"solar-dispatch/internal/model"
)

// LoadPricesCSV reads a price series from a CSV with header "time,price_kwh".
// Timestamps are RFC3339.
func LoadPricesCSV(path string) ([]model.PricePoint, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return nil, err
	}
	out := make([]model.PricePoint, 0, len(rows))
	for i, row := range rows {
		ts, price, err := parseTimeValue(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		out = append(out, model.PricePoint{Time: ts, PriceKWh: price})
	}
	return out, nil
}

// LoadProductionCSV reads a production series from a CSV with header
// "time,production_kwh".
func LoadProductionCSV(path string) ([]model.ProductionPoint, error) {
	rows, err := readCSV(path, 2)
	if err != nil {
		return nil, err
	}
	out := make([]model.ProductionPoint, 0, len(rows))
	for i, row := range rows {
		ts, prod, err := parseTimeValue(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		out = append(out, model.ProductionPoint{Time: ts, ProductionKWh: prod})
	}
	return out, nil
}

func readCSV(path string, minFields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	// Drop the header row.
	records = records[1:]
	for i, row := range records {
		if len(row) < minFields {
			return nil, fmt.Errorf("%s row %d: expected %d fields, got %d", path, i+2, minFields, len(row))
		}
	}
	return records, nil
}

func parseTimeValue(tsField, valField string) (time.Time, float64, error) {
	ts, err := time.Parse(time.RFC3339, tsField)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("bad timestamp %q: %w", tsField, err)
	}
	v, err := strconv.ParseFloat(valField, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("bad value %q: %w", valField, err)
	}
	return ts, v, nil
}
