package model

import "errors"

// BatteryParams defines the physical and economic parameters of the battery.
// Units:
// - CapacityKWh: kWh
// - Efficiencies: (0, 1]
// - SellPriceFactor: fraction of the grid buy price received when exporting
type BatteryParams struct {
	CapacityKWh         float64
	InitialChargeKWh    float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
	SellPriceFactor     float64
}

// BatteryState captures mutable state. Each simulation run owns an
// independent copy; nothing here is shared across concurrent runs.
type BatteryState struct {
	// ChargeKWh is the stored energy, always within [0, CapacityKWh].
	ChargeKWh float64
}

// Battery is a convenience wrapper bundling params + state.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

// NewBattery validates params and returns a battery starting at the initial
// charge. An initial charge above capacity is clamped to capacity rather than
// rejected; this forgiving-input behavior is deliberate.
func NewBattery(params BatteryParams) (*Battery, error) {
	initial := params.InitialChargeKWh
	if initial > params.CapacityKWh {
		initial = params.CapacityKWh
	}
	b := &Battery{
		Params: params,
		State:  BatteryState{ChargeKWh: initial},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityKWh <= 0 {
		return errors.New("CapacityKWh must be > 0")
	}
	if p.InitialChargeKWh < 0 {
		return errors.New("InitialChargeKWh must be >= 0")
	}
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if p.SellPriceFactor <= 0 || p.SellPriceFactor > 1 {
		return errors.New("SellPriceFactor must be in (0, 1]")
	}
	return nil
}

// SpareCapacityKWh is the room left before the battery is full.
func (b *Battery) SpareCapacityKWh() float64 {
	spare := b.Params.CapacityKWh - b.State.ChargeKWh
	if spare < 0 {
		return 0
	}
	return spare
}

// Store adds qty kWh of already efficiency-adjusted energy, clamping at
// capacity.
func (b *Battery) Store(qtyKWh float64) {
	c := b.State.ChargeKWh + qtyKWh
	if c > b.Params.CapacityKWh {
		c = b.Params.CapacityKWh
	}
	b.State.ChargeKWh = c
}

// Withdraw removes the stored energy behind a delivered quantity of qty kWh
// (i.e. qty / discharge efficiency), clamping at zero.
func (b *Battery) Withdraw(qtyKWh float64) {
	c := b.State.ChargeKWh - qtyKWh/b.Params.DischargeEfficiency
	if c < 0 {
		c = 0
	}
	b.State.ChargeKWh = c
}
