package forecast

import (
	"encoding/json"
	"errors"
	"math"
	"os"
)

// Sample is one historical training row: observed weather plus the measured
// production for the same hour.
type Sample struct {
	Features
	ProductionKWh float64 `json:"production_kwh"`
}

// Metrics summarizes a fit on held-back data.
type Metrics struct {
	MAE      float64 `json:"mae"`
	R2       float64 `json:"r2"`
	NSamples int     `json:"n_samples"`
}

// LinearModel is a least-squares regression over the four weather features.
// It is deliberately small: a production-shaped baseline that trains in
// microseconds and serializes to a few bytes.
type LinearModel struct {
	Intercept float64    `json:"intercept"`
	Weights   [4]float64 `json:"weights"` // temperature, cloud, humidity, irradiance
	Metrics   Metrics    `json:"metrics"`
}

// Fit solves the normal equations for the samples and stores in-sample
// metrics. It needs more samples than parameters.
func Fit(samples []Sample) (*LinearModel, error) {
	if len(samples) < 6 {
		return nil, errors.New("need at least 6 samples to fit")
	}

	// Design matrix columns: 1, temp, cloud, humidity, irradiance.
	const dim = 5
	var ata [dim][dim]float64
	var atb [dim]float64
	for _, s := range samples {
		x := [dim]float64{1, s.TemperatureC, s.CloudCoverPct, s.HumidityPct, s.IrradianceWm2}
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				ata[i][j] += x[i] * x[j]
			}
			atb[i] += x[i] * s.ProductionKWh
		}
	}

	theta, err := solve(ata, atb)
	if err != nil {
		return nil, err
	}

	m := &LinearModel{Intercept: theta[0]}
	copy(m.Weights[:], theta[1:])
	m.Metrics = m.evaluate(samples)
	return m, nil
}

// Predict implements Estimator. Output is clamped at zero: a panel never
// produces negative energy.
func (m *LinearModel) Predict(f Features) (float64, error) {
	if m == nil {
		return 0, errors.New("model is nil")
	}
	y := m.Intercept +
		m.Weights[0]*f.TemperatureC +
		m.Weights[1]*f.CloudCoverPct +
		m.Weights[2]*f.HumidityPct +
		m.Weights[3]*f.IrradianceWm2
	if y < 0 {
		y = 0
	}
	return y, nil
}

// Save writes the model artifact as JSON.
func (m *LinearModel) Save(path string) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// LoadModel reads a previously saved artifact.
func LoadModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *LinearModel) evaluate(samples []Sample) Metrics {
	var absErr, mean float64
	for _, s := range samples {
		mean += s.ProductionKWh
	}
	mean /= float64(len(samples))

	var ssRes, ssTot float64
	for _, s := range samples {
		pred, _ := m.Predict(s.Features)
		absErr += math.Abs(pred - s.ProductionKWh)
		ssRes += (pred - s.ProductionKWh) * (pred - s.ProductionKWh)
		ssTot += (s.ProductionKWh - mean) * (s.ProductionKWh - mean)
	}

	met := Metrics{
		MAE:      absErr / float64(len(samples)),
		NSamples: len(samples),
	}
	if ssTot > 0 {
		met.R2 = 1 - ssRes/ssTot
	}
	return met
}

// solve runs Gaussian elimination with partial pivoting on a 5x5 system.
func solve(a [5][5]float64, b [5]float64) ([5]float64, error) {
	const dim = 5
	for col := 0; col < dim; col++ {
		pivot := col
		for r := col + 1; r < dim; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return [5]float64{}, errors.New("singular feature matrix; features may be constant")
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < dim; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < dim; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	var x [5]float64
	for row := dim - 1; row >= 0; row-- {
		sum := b[row]
		for c := row + 1; c < dim; c++ {
			sum -= a[row][c] * x[c]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
