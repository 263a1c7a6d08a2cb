package dispatch

import (
	"math"

	"solar-dispatch/internal/model"
)

// Simulator runs the per-hour dispatch heuristic: a single forward pass over
// an aligned hourly series, choosing for each hour exactly one of charge,
// discharge, sell or buy to maximize the cumulative economic benefit.
//
// A Simulator is immutable after construction; every Run owns an independent
// battery state, so concurrent Runs on the same Simulator are safe.
type Simulator struct {
	params model.BatteryParams
	policy Policy
}

// New validates the battery parameters and returns a ready simulator.
// An initial charge above capacity is clamped, not rejected.
func New(params model.BatteryParams, policy Policy) (*Simulator, error) {
	b, err := model.NewBattery(params)
	if err != nil {
		return nil, err
	}
	// Keep the clamped initial charge.
	params.InitialChargeKWh = b.State.ChargeKWh
	return &Simulator{
		params: params,
		policy: policy.withDefaults(),
	}, nil
}

// Params returns the (clamped) battery parameters of this simulator.
func (s *Simulator) Params() model.BatteryParams { return s.params }

// Policy returns the effective policy thresholds.
func (s *Simulator) Policy() Policy { return s.policy }

// Run aligns the two series (inner join on timestamp, ascending) and
// simulates hour by hour. baseLoadKWh is a uniform per-hour consumption.
//
// Empty or fully misaligned input is not an error: the result has zero
// totals, an empty trace and the initial charge as final charge, so callers
// may invoke Run speculatively before data is loaded.
func (s *Simulator) Run(production []model.ProductionPoint, prices []model.PricePoint, baseLoadKWh float64) *Result {
	return s.RunAligned(model.AlignSeries(production, prices), baseLoadKWh)
}

// RunAligned simulates over an already joined, time-ordered series.
func (s *Simulator) RunAligned(rows []model.Observation, baseLoadKWh float64) *Result {
	batt := &model.Battery{
		Params: s.params,
		State:  model.BatteryState{ChargeKWh: s.params.InitialChargeKWh},
	}

	trace := make([]DecisionRecord, 0, len(rows))
	var cum, sold, bought float64

	for i, row := range rows {
		futureRef := s.futureReferencePrice(rows, i)
		available := row.ProductionKWh - baseLoadKWh

		decision, qty := s.decide(available, batt.State.ChargeKWh, row.PriceKWh, futureRef)
		benefit := execute(batt, decision, qty, row.PriceKWh)
		cum += benefit

		switch decision {
		case model.DecisionSell:
			sold += qty
		case model.DecisionBuy:
			bought += qty
		}

		trace = append(trace, DecisionRecord{
			Time:          row.Time,
			ProductionKWh: row.ProductionKWh,
			LoadKWh:       baseLoadKWh,
			PriceKWh:      row.PriceKWh,
			ChargeKWh:     batt.State.ChargeKWh,
			Decision:      decision,
			QuantityKWh:   qty,
			Benefit:       benefit,
			CumBenefit:    cum,
		})
	}

	res := &Result{
		TotalBenefit:    cum,
		EnergySoldKWh:   sold,
		EnergyBoughtKWh: bought,
		FinalChargeKWh:  batt.State.ChargeKWh,
		Cycles:          Cycles(trace, s.params.CapacityKWh),
		Trace:           trace,
	}
	if len(rows) > 0 {
		res.MeanDailyBenefit = cum / (float64(len(rows)) / 24)
	}
	return res
}

// futureReferencePrice is the mean buy price over the first ReferenceHours
// rows of the look-ahead window starting at row i inclusive. The window is a
// read-only view into the series being iterated; nothing is re-queried. Falls
// back to the current price when the window is empty.
func (s *Simulator) futureReferencePrice(rows []model.Observation, i int) float64 {
	end := i + s.policy.LookaheadHours
	if end > len(rows) {
		end = len(rows)
	}
	window := rows[i:end]
	if len(window) > s.policy.ReferenceHours {
		window = window[:s.policy.ReferenceHours]
	}
	if len(window) == 0 {
		return rows[i].PriceKWh
	}
	var sum float64
	for _, r := range window {
		sum += r.PriceKWh
	}
	return sum / float64(len(window))
}

// decide chooses exactly one decision for an hour. Pure: it reads state but
// mutates nothing, so each branch tests independently of the loop.
//
// Surplus hours either charge (spare room and a price that is not running hot
// against the near future) or sell the full surplus. Deficit hours either
// discharge (price above floor, or a comfortably full battery) or buy the
// full deficit from the grid.
func (s *Simulator) decide(availableKWh, chargeKWh, priceKWh, futureRef float64) (model.Decision, float64) {
	p := s.policy

	if availableKWh > 0 {
		spare := s.params.CapacityKWh - chargeKWh
		if spare > p.MinSpareKWh && priceKWh < futureRef*p.ChargePriceCeiling {
			qty := math.Min(availableKWh, spare) * s.params.ChargeEfficiency
			return model.DecisionCharge, qty
		}
		// Export the surplus as-is; no efficiency loss on a direct sale.
		return model.DecisionSell, availableKWh
	}

	deficit := -availableKWh
	if chargeKWh > p.MinChargeKWh &&
		(priceKWh > futureRef*p.DischargePriceFloor || chargeKWh > p.DischargeSOCFraction*s.params.CapacityKWh) {
		qty := math.Min(deficit, chargeKWh) * s.params.DischargeEfficiency
		return model.DecisionDischarge, qty
	}
	return model.DecisionBuy, deficit
}

// execute applies the decision to the battery and returns the signed hourly
// economic effect.
//
// Conventions preserved from the field deployment:
// - charging solar surplus costs nothing (the energy is free at the meter);
// - discharge is valued at the buy price (an avoided purchase, not a sale);
// - sell is valued at the discounted sell price.
// The discharge/sell asymmetry is intentional and must not be unified.
func execute(batt *model.Battery, decision model.Decision, qtyKWh, priceKWh float64) float64 {
	switch decision {
	case model.DecisionCharge:
		batt.Store(qtyKWh)
		return 0
	case model.DecisionDischarge:
		batt.Withdraw(qtyKWh)
		return qtyKWh * priceKWh
	case model.DecisionSell:
		return qtyKWh * priceKWh * batt.Params.SellPriceFactor
	case model.DecisionBuy:
		return -qtyKWh * priceKWh
	}
	return 0
}
