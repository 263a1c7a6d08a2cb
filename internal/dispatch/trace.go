package dispatch

import (
	"math"
	"time"

	"solar-dispatch/internal/model"
)

// DecisionRecord is one row of per-hour output. The ordered sequence of
// records across a run is the trace, the primary artifact for "what
// happened"; it is append-only and never mutated after a run.
type DecisionRecord struct {
	Time time.Time `json:"time"`

	ProductionKWh float64 `json:"production_kwh"`
	LoadKWh       float64 `json:"load_kwh"`
	PriceKWh      float64 `json:"price_kwh"`

	// ChargeKWh is the battery charge after this hour's decision executed.
	ChargeKWh float64 `json:"charge_kwh"`

	Decision    model.Decision `json:"decision"`
	QuantityKWh float64        `json:"quantity_kwh"`

	// Benefit is the hourly economic effect, signed: positive = income or
	// avoided purchase, negative = expense.
	Benefit    float64 `json:"benefit"`
	CumBenefit float64 `json:"cum_benefit"`
}

// Result is the read-only aggregate over one simulation run.
type Result struct {
	TotalBenefit     float64 `json:"total_benefit"`
	MeanDailyBenefit float64 `json:"mean_daily_benefit"`
	EnergySoldKWh    float64 `json:"energy_sold_kwh"`
	EnergyBoughtKWh  float64 `json:"energy_bought_kwh"`
	FinalChargeKWh   float64 `json:"final_charge_kwh"`
	Cycles           float64 `json:"cycles"`

	Trace []DecisionRecord `json:"trace,omitempty"`
}

// Cycles approximates battery wear as full capacity-equivalent charge
// throughput: the sum of all charge quantities divided by capacity, rounded
// to 2 decimals. Returns 0 on non-positive capacity.
func Cycles(trace []DecisionRecord, capacityKWh float64) float64 {
	if capacityKWh <= 0 {
		return 0
	}
	var charged float64
	for _, r := range trace {
		if r.Decision == model.DecisionCharge {
			charged += r.QuantityKWh
		}
	}
	return math.Round(charged/capacityKWh*100) / 100
}
