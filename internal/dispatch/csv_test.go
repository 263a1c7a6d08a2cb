package dispatch

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-dispatch/internal/model"
)

func TestWriteTraceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	trace := []DecisionRecord{
		{
			Time:          time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
			ProductionKWh: 7,
			LoadKWh:       2,
			PriceKWh:      0.10,
			ChargeKWh:     9.75,
			Decision:      model.DecisionCharge,
			QuantityKWh:   4.75,
			Benefit:       0,
			CumBenefit:    0,
		},
		{
			Time:        time.Date(2026, 2, 1, 11, 0, 0, 0, time.UTC),
			PriceKWh:    0.20,
			Decision:    model.DecisionDischarge,
			QuantityKWh: 1.9,
			Benefit:     0.38,
			CumBenefit:  0.38,
		},
	}
	require.NoError(t, WriteTraceCSV(path, trace))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"time", "production_kwh", "load_kwh", "price_kwh",
		"charge_kwh", "decision", "quantity_kwh", "benefit", "cum_benefit",
	}, rows[0])

	assert.Equal(t, "2026-02-01T10:00:00Z", rows[1][0])
	assert.Equal(t, "4.750000", rows[1][6])
	assert.Equal(t, "charge", rows[1][5])
	assert.Equal(t, "0.380000", rows[2][8])
}

func TestWriteTraceCSV_EmptyTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, WriteTraceCSV(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "time,production_kwh")
}
