package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func TestAlignSeries_InnerJoin(t *testing.T) {
	production := []ProductionPoint{
		{Time: base, ProductionKWh: 1},
		{Time: base.Add(time.Hour), ProductionKWh: 2},
		{Time: base.Add(2 * time.Hour), ProductionKWh: 3}, // no price for this hour
	}
	prices := []PricePoint{
		{Time: base, PriceKWh: 0.10},
		{Time: base.Add(time.Hour), PriceKWh: 0.20},
		{Time: base.Add(5 * time.Hour), PriceKWh: 0.30}, // no production for this hour
	}

	rows := AlignSeries(production, prices)
	require.Len(t, rows, 2)
	assert.InDelta(t, 1, rows[0].ProductionKWh, 1e-9)
	assert.InDelta(t, 0.10, rows[0].PriceKWh, 1e-9)
	assert.InDelta(t, 0.20, rows[1].PriceKWh, 1e-9)
}

func TestAlignSeries_SortsAscending(t *testing.T) {
	production := []ProductionPoint{
		{Time: base.Add(2 * time.Hour), ProductionKWh: 3},
		{Time: base, ProductionKWh: 1},
		{Time: base.Add(time.Hour), ProductionKWh: 2},
	}
	prices := []PricePoint{
		{Time: base.Add(time.Hour), PriceKWh: 0.2},
		{Time: base.Add(2 * time.Hour), PriceKWh: 0.3},
		{Time: base, PriceKWh: 0.1},
	}

	rows := AlignSeries(production, prices)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Time.Before(rows[i].Time))
	}
}

func TestAlignSeries_NoOverlap(t *testing.T) {
	production := []ProductionPoint{{Time: base, ProductionKWh: 1}}
	prices := []PricePoint{{Time: base.Add(time.Hour), PriceKWh: 0.1}}
	assert.Empty(t, AlignSeries(production, prices))
	assert.Empty(t, AlignSeries(nil, nil))
}
