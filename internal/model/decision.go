package model

// Decision is the operating mode chosen for one hour. Exactly one decision is
// taken per hour; the four kinds are mutually exclusive.
// Keep these values stable; they are intended for CSV/JSON output.
type Decision string

const (
	DecisionCharge    Decision = "charge"
	DecisionDischarge Decision = "discharge"
	DecisionSell      Decision = "sell"
	DecisionBuy       Decision = "buy"
)

// Valid reports whether d is one of the four known decision kinds.
func (d Decision) Valid() bool {
	switch d {
	case DecisionCharge, DecisionDischarge, DecisionSell, DecisionBuy:
		return true
	}
	return false
}
