package forecast

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticSamples(n int, rng *rand.Rand) []Sample {
	// Production driven mostly by irradiance, dampened by cloud cover.
	out := make([]Sample, n)
	for i := range out {
		f := Features{
			TemperatureC:  10 + rng.Float64()*20,
			CloudCoverPct: rng.Float64() * 100,
			HumidityPct:   30 + rng.Float64()*50,
			IrradianceWm2: rng.Float64() * 1000,
		}
		out[i] = Sample{
			Features:      f,
			ProductionKWh: 0.005*f.IrradianceWm2 - 0.01*f.CloudCoverPct + 1,
		}
	}
	return out
}

func TestFit_RecoversLinearRelation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := syntheticSamples(200, rng)

	m, err := Fit(samples)
	require.NoError(t, err)

	// Noise-free linear data should fit almost exactly.
	assert.Less(t, m.Metrics.MAE, 1e-6)
	assert.Greater(t, m.Metrics.R2, 0.999)
	assert.Equal(t, 200, m.Metrics.NSamples)

	pred, err := m.Predict(Features{TemperatureC: 20, CloudCoverPct: 50, HumidityPct: 40, IrradianceWm2: 600})
	require.NoError(t, err)
	assert.InDelta(t, 0.005*600-0.01*50+1, pred, 1e-6)
}

func TestFit_TooFewSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Fit(syntheticSamples(3, rng))
	assert.Error(t, err)
}

func TestPredict_ClampsNegative(t *testing.T) {
	m := &LinearModel{Intercept: -5}
	pred, err := m.Predict(Features{})
	require.NoError(t, err)
	assert.Zero(t, pred)
}

func TestModel_SaveLoadRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	m, err := Fit(syntheticSamples(100, rng))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, m.Save(path))

	loaded, err := LoadModel(path)
	require.NoError(t, err)

	f := Features{TemperatureC: 15, CloudCoverPct: 20, HumidityPct: 60, IrradianceWm2: 400}
	want, _ := m.Predict(f)
	got, _ := loaded.Predict(f)
	assert.InDelta(t, want, got, 1e-12)
}

func TestEstimateIrradiance(t *testing.T) {
	// Night hours produce nothing.
	assert.Zero(t, EstimateIrradiance(3, 0))
	assert.Zero(t, EstimateIrradiance(22, 0))

	// Clear noon peaks at 1000.
	assert.InDelta(t, 1000, EstimateIrradiance(12, 0), 1e-9)

	// Full overcast keeps 30% of the clear-sky value.
	assert.InDelta(t, 300, EstimateIrradiance(12, 100), 1e-9)

	// Morning below noon.
	assert.Less(t, EstimateIrradiance(8, 0), EstimateIrradiance(12, 0))
}
