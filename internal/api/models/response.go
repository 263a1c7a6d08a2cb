package models

import (
	"time"

	"solar-dispatch/internal/dispatch"
)

// SimulateResponse is returned from a simulation run.
type SimulateResponse struct {
	ID              string                    `json:"id,omitempty"`
	Status          string                    `json:"status"`
	Summary         SimulationSummary         `json:"summary"`
	Trace           []dispatch.DecisionRecord `json:"trace,omitempty"`
	Recommendations []string                  `json:"recommendations,omitempty"`
}

// SimulationSummary contains the aggregated results.
type SimulationSummary struct {
	TotalBenefit     float64    `json:"total_benefit"`
	MeanDailyBenefit float64    `json:"mean_daily_benefit"`
	EnergySoldKWh    float64    `json:"energy_sold_kwh"`
	EnergyBoughtKWh  float64    `json:"energy_bought_kwh"`
	FinalChargeKWh   float64    `json:"final_charge_kwh"`
	Cycles           float64    `json:"cycles"`
	TotalHours       int        `json:"total_hours"`
	Window           TimeWindow `json:"window"`
}

// TimeWindow represents a time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ROIResponse mirrors finance.ROIResult, with payback rendered as a string so
// the undefined (infinite) case survives JSON.
type ROIResponse struct {
	TotalBenefit     float64 `json:"total_benefit"`
	ROIPercent       float64 `json:"roi_percent"`
	PaybackYears     string  `json:"payback_years"`
	ApproxIRRPercent float64 `json:"approx_irr_percent"`
}

// RunInfo describes one saved simulation run.
type RunInfo struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	CapacityKWh      float64   `json:"capacity_kwh"`
	InitialChargeKWh float64   `json:"initial_charge_kwh"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSummary builds a SimulationSummary from a dispatch result.
func NewSummary(res *dispatch.Result) SimulationSummary {
	s := SimulationSummary{
		TotalBenefit:     res.TotalBenefit,
		MeanDailyBenefit: res.MeanDailyBenefit,
		EnergySoldKWh:    res.EnergySoldKWh,
		EnergyBoughtKWh:  res.EnergyBoughtKWh,
		FinalChargeKWh:   res.FinalChargeKWh,
		Cycles:           res.Cycles,
		TotalHours:       len(res.Trace),
	}
	if len(res.Trace) > 0 {
		s.Window = TimeWindow{
			Start: res.Trace[0].Time,
			End:   res.Trace[len(res.Trace)-1].Time,
		}
	}
	return s
}
