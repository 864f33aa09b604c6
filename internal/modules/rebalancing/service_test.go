package rebalancing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatwa/nivesh/internal/modules/health"
	"github.com/rpatwa/nivesh/internal/modules/universe"
)

func priced(symbol, buyZone string, price float64) universe.Stock {
	return universe.Stock{Symbol: symbol, Name: symbol + " Ltd", BuyZone: buyZone, CurrentPrice: &price}
}

func TestBuildPlanReductionsFromViolationsWorstFirst(t *testing.T) {
	report := &health.Report{Violations: []health.AllocationViolation{
		{Symbol: "A", MarketCap: "Large Cap", Percent: 6, LimitPct: 5},
		{Symbol: "B", MarketCap: "Small Cap", Percent: 7, LimitPct: 2},
	}}

	plan := buildPlan(report, nil)
	require.Len(t, plan.ToReduce, 2)
	// B is 5 points over, A only 1
	assert.Equal(t, "B", plan.ToReduce[0].Symbol)
	assert.Equal(t, 2.0, plan.ToReduce[0].TargetPct)
	assert.Contains(t, plan.ToReduce[0].Reason, "Small Cap")
}

func TestBuildPlanBuyCandidatesByZone(t *testing.T) {
	stocks := []universe.Stock{
		priced("IN", "250-300", 275),
		priced("NEAR", "250-300", 248),
		priced("OUT", "250-300", 400),
		priced("NOPRICE", "250-300", 0),
		{Symbol: "NOZONE", CurrentPrice: ptr(100.0)},
	}
	stocks[3].CurrentPrice = nil

	plan := buildPlan(&health.Report{}, stocks)
	require.Len(t, plan.ToAdd, 2)
	assert.Equal(t, "IN", plan.ToAdd[0].Symbol)
	assert.Equal(t, PriorityHigh, plan.ToAdd[0].Priority)
	assert.Equal(t, "NEAR", plan.ToAdd[1].Symbol)
	assert.Equal(t, PriorityMedium, plan.ToAdd[1].Priority)
}

func TestBuildPlanHighPriorityFirst(t *testing.T) {
	stocks := []universe.Stock{
		priced("NEAR", "100-110", 98),
		priced("IN", "100-110", 105),
	}

	plan := buildPlan(&health.Report{}, stocks)
	require.Len(t, plan.ToAdd, 2)
	assert.Equal(t, "IN", plan.ToAdd[0].Symbol)
}

func TestBuildPlanEmpty(t *testing.T) {
	plan := buildPlan(&health.Report{}, nil)
	assert.Empty(t, plan.ToReduce)
	assert.Empty(t, plan.ToAdd)
}

func ptr(f float64) *float64 { return &f }
