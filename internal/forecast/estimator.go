// Package forecast estimates hourly solar yield from weather features. The
// simulator consumes predictions and measurements interchangeably, as long as
// both are kWh per hour.
package forecast

import "math"

// Features are the weather inputs to a yield estimate.
type Features struct {
	TemperatureC  float64 `json:"temperature_c"`
	CloudCoverPct float64 `json:"cloud_cover_pct"`
	HumidityPct   float64 `json:"humidity_pct"`
	IrradianceWm2 float64 `json:"irradiance_wm2"`
}

// Estimator predicts solar production in kWh for one hour. Implementations
// must never return a negative value.
type Estimator interface {
	Predict(f Features) (float64, error)
}

// EstimateIrradiance approximates solar irradiance (W/m²) for an hour of day
// given cloud cover. Daylight follows a sine arc between 06:00 and 18:00 with
// a 1000 W/m² clear-sky peak; full overcast attenuates 70% of it. Outside
// daylight the estimate is zero.
func EstimateIrradiance(hour int, cloudCoverPct float64) float64 {
	if hour < 6 || hour > 18 {
		return 0
	}
	base := 1000 * math.Sin(float64(hour-6)*math.Pi/12)
	attenuation := 1 - (cloudCoverPct/100)*0.7
	if attenuation < 0 {
		attenuation = 0
	}
	return base * attenuation
}
