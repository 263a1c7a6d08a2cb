package models

import "solar-dispatch/internal/model"

// SimulateRequest is the body for running a dispatch simulation. Input rows
// come either inline (series) or from the time-series store (range); inline
// wins when both are present.
type SimulateRequest struct {
	Battery     BatteryConfig    `json:"battery" binding:"required"`
	Policy      PolicyConfig     `json:"policy,omitempty"`
	BaseLoadKWh float64          `json:"base_load_kwh"`
	Series      *SeriesInput     `json:"series,omitempty"`
	Range       *RangeInput      `json:"range,omitempty"`
	Options     SimulateOptions  `json:"options,omitempty"`
}

// BatteryConfig defines battery parameters.
type BatteryConfig struct {
	Name                string  `json:"name,omitempty"`
	CapacityKWh         float64 `json:"capacity_kwh"`
	InitialChargeKWh    float64 `json:"initial_charge_kwh"`
	ChargeEfficiency    float64 `json:"charge_efficiency"`
	DischargeEfficiency float64 `json:"discharge_efficiency"`
	SellPriceFactor     float64 `json:"sell_price_factor"`
}

// PolicyConfig overrides dispatch policy thresholds; zero fields keep the
// defaults.
type PolicyConfig struct {
	LookaheadHours       int     `json:"lookahead_hours,omitempty"`
	ReferenceHours       int     `json:"reference_hours,omitempty"`
	ChargePriceCeiling   float64 `json:"charge_price_ceiling,omitempty"`
	DischargePriceFloor  float64 `json:"discharge_price_floor,omitempty"`
	DischargeSOCFraction float64 `json:"discharge_soc_fraction,omitempty"`
	MinSpareKWh          float64 `json:"min_spare_kwh,omitempty"`
	MinChargeKWh         float64 `json:"min_charge_kwh,omitempty"`
}

// SeriesInput carries input rows inline.
type SeriesInput struct {
	Production []model.ProductionPoint `json:"production"`
	Prices     []model.PricePoint      `json:"prices"`
}

// RangeInput selects rows from the store, inclusive, RFC3339 or YYYY-MM-DD.
type RangeInput struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// SimulateOptions contains optional simulation parameters.
type SimulateOptions struct {
	IncludeTrace bool `json:"include_trace,omitempty"` // default: false
	Save         bool `json:"save,omitempty"`          // persist the run in the store
}

// WindowsRequest asks for buy/sell window classification of a price series.
type WindowsRequest struct {
	Prices      []model.PricePoint `json:"prices" binding:"required"`
	WindowHours int                `json:"window_hours,omitempty"`
}

// ROIRequest carries the investment arithmetic inputs.
type ROIRequest struct {
	Investment    float64 `json:"investment" binding:"required"`
	AnnualBenefit float64 `json:"annual_benefit"`
	LifetimeYears int     `json:"lifetime_years,omitempty"` // default: 25
}
