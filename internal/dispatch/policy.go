package dispatch

// Policy holds the tuning constants of the greedy dispatch heuristic. These
// are policy knobs, not physical limits; the defaults come from operating the
// reference 10 kWh installation and can be overridden per run.
type Policy struct {
	// LookaheadHours bounds the forward slice of rows inspected each hour,
	// counted from the current row inclusive.
	LookaheadHours int

	// ReferenceHours is how many leading rows of the look-ahead window are
	// averaged into the future reference price.
	ReferenceHours int

	// ChargePriceCeiling: charge from surplus only while the current buy
	// price is below futureReference * ChargePriceCeiling.
	ChargePriceCeiling float64

	// DischargePriceFloor: cover a deficit from the battery when the current
	// buy price is above futureReference * DischargePriceFloor.
	DischargePriceFloor float64

	// DischargeSOCFraction: also discharge whenever the stored energy is
	// above this fraction of capacity, regardless of price.
	DischargeSOCFraction float64

	// MinSpareKWh is the minimum spare capacity worth charging into.
	MinSpareKWh float64

	// MinChargeKWh is the minimum stored energy required before the battery
	// is allowed to discharge at all.
	MinChargeKWh float64
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		LookaheadHours:       24,
		ReferenceHours:       6,
		ChargePriceCeiling:   1.2,
		DischargePriceFloor:  0.9,
		DischargeSOCFraction: 0.7,
		MinSpareKWh:          0.1,
		MinChargeKWh:         1.0,
	}
}

// withDefaults fills zero-valued fields so a partially specified policy still
// behaves like the stock one.
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.LookaheadHours <= 0 {
		p.LookaheadHours = d.LookaheadHours
	}
	if p.ReferenceHours <= 0 {
		p.ReferenceHours = d.ReferenceHours
	}
	if p.ChargePriceCeiling <= 0 {
		p.ChargePriceCeiling = d.ChargePriceCeiling
	}
	if p.DischargePriceFloor <= 0 {
		p.DischargePriceFloor = d.DischargePriceFloor
	}
	if p.DischargeSOCFraction <= 0 {
		p.DischargeSOCFraction = d.DischargeSOCFraction
	}
	if p.MinSpareKWh <= 0 {
		p.MinSpareKWh = d.MinSpareKWh
	}
	if p.MinChargeKWh <= 0 {
		p.MinChargeKWh = d.MinChargeKWh
	}
	return p
}
