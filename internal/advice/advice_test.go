package advice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"solar-dispatch/internal/dispatch"
	"solar-dispatch/internal/model"
)

func traceOf(decisions ...model.Decision) []dispatch.DecisionRecord {
	out := make([]dispatch.DecisionRecord, len(decisions))
	for i, d := range decisions {
		out[i] = dispatch.DecisionRecord{Decision: d}
	}
	return out
}

func TestRecommendations_Nil(t *testing.T) {
	assert.Empty(t, Recommendations(nil, nil))
}

func TestRecommendations_NetLoss(t *testing.T) {
	res := &dispatch.Result{TotalBenefit: -10}
	msgs := Recommendations(res, nil)
	assert.Contains(t, msgs, "The simulation shows a net loss. Consider a larger battery capacity.")
}

func TestRecommendations_GoodBenefitAndHighCycles(t *testing.T) {
	res := &dispatch.Result{TotalBenefit: 120, Cycles: 2.0}
	msgs := Recommendations(res, nil)
	assert.Contains(t, msgs, "Excellent energy management. The system is well tuned.")
	assert.Contains(t, msgs, "Heavy battery cycling. This maximizes savings but accelerates wear.")
}

func TestRecommendations_LowCyclesNeedsTrace(t *testing.T) {
	res := &dispatch.Result{TotalBenefit: 10, Cycles: 0.1}
	assert.NotContains(t, Recommendations(res, nil),
		"The battery is barely used. Consider adjusting the charge/discharge thresholds.")

	res.Trace = traceOf(model.DecisionBuy)
	assert.Contains(t, Recommendations(res, nil),
		"The battery is barely used. Consider adjusting the charge/discharge thresholds.")
}

func TestRecommendations_HighSellShare(t *testing.T) {
	res := &dispatch.Result{
		TotalBenefit: 10,
		Cycles:       1.0,
		Trace:        traceOf(model.DecisionSell, model.DecisionSell, model.DecisionBuy),
	}
	assert.Contains(t, Recommendations(res, nil), "High share of grid exports. Good use of price peaks.")
}

func TestRecommendations_PriceSpike(t *testing.T) {
	t0 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	prices := []model.PricePoint{
		{Time: t0, PriceKWh: 0.10},
		{Time: t0.Add(time.Hour), PriceKWh: 0.20},
	}
	res := &dispatch.Result{TotalBenefit: 10, Cycles: 1.0}
	assert.Contains(t, Recommendations(res, prices),
		"Price spikes expected soon. Keep the battery charged to sell into them.")
}

func TestRecommendations_Default(t *testing.T) {
	res := &dispatch.Result{TotalBenefit: 10, Cycles: 1.0}
	msgs := Recommendations(res, nil)
	assert.Equal(t, []string{"System operating within normal parameters."}, msgs)
}

func TestSellRatio(t *testing.T) {
	assert.Zero(t, SellRatio(nil))

	trace := traceOf(model.DecisionSell, model.DecisionBuy, model.DecisionSell, model.DecisionCharge)
	assert.InDelta(t, 0.5, SellRatio(trace), 1e-9)
}
