// Package finance holds the investment arithmetic derived from a fixed
// annual benefit figure. Pure functions, no state.
package finance

import (
	"errors"
	"math"
	"strconv"
)

// ROIResult summarizes the return on a solar + battery installation.
type ROIResult struct {
	TotalBenefit float64 `json:"total_benefit"`
	ROIPercent   float64 `json:"roi_percent"`

	// PaybackYears is +Inf when the annual benefit is zero or negative;
	// it serializes as the string "inf" in JSON via PaybackYearsString.
	PaybackYears float64 `json:"-"`

	ApproxIRRPercent float64 `json:"approx_irr_percent"`
}

// ROI computes lifetime benefit, ROI %, payback years and an approximate IRR.
// Values are rounded to 2 decimals. A zero annual benefit yields an infinite
// payback rather than a division fault.
func ROI(investment, annualBenefit float64, lifetimeYears int) (ROIResult, error) {
	if investment <= 0 {
		return ROIResult{}, errors.New("investment must be > 0")
	}
	if lifetimeYears <= 0 {
		return ROIResult{}, errors.New("lifetimeYears must be > 0")
	}

	total := annualBenefit * float64(lifetimeYears)
	payback := math.Inf(1)
	if annualBenefit > 0 {
		payback = round2(investment / annualBenefit)
	}

	return ROIResult{
		TotalBenefit:     round2(total),
		ROIPercent:       round2((total - investment) / investment * 100),
		PaybackYears:     payback,
		ApproxIRRPercent: round2(annualBenefit / investment * 100),
	}, nil
}

// PaybackYearsString renders the payback figure, using "inf" for the
// undefined case so it survives JSON encoding.
func (r ROIResult) PaybackYearsString() string {
	if math.IsInf(r.PaybackYears, 1) {
		return "inf"
	}
	return strconv.FormatFloat(r.PaybackYears, 'f', 2, 64)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
