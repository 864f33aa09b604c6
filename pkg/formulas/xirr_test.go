package formulas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestXIRR_SimpleAnnualReturn(t *testing.T) {
	// 1000 invested, 1100 back exactly one year later -> 10%
	flows := []CashFlow{
		{Date: date(2023, 1, 1), Amount: -1000},
		{Date: date(2024, 1, 1), Amount: 1100},
	}

	rate := XIRRDefault(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, 0.10, *rate, 0.001)
}

func TestXIRR_TwoYearDoubling(t *testing.T) {
	// Doubling over two years is ~41.4% annualized (sqrt(2) - 1)
	flows := []CashFlow{
		{Date: date(2022, 1, 1), Amount: -1000},
		{Date: date(2024, 1, 1), Amount: 2000},
	}

	rate := XIRRDefault(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, 0.4142, *rate, 0.005)
}

func TestXIRR_UnsortedInputIsSorted(t *testing.T) {
	flows := []CashFlow{
		{Date: date(2024, 1, 1), Amount: 1100},
		{Date: date(2023, 1, 1), Amount: -1000},
	}

	rate := XIRRDefault(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, 0.10, *rate, 0.001)
}

func TestXIRR_MultipleFlows(t *testing.T) {
	// Monthly investments with a final positive value: the solve must
	// converge and the rate must be positive when value exceeds cost.
	flows := []CashFlow{
		{Date: date(2023, 1, 1), Amount: -500},
		{Date: date(2023, 4, 1), Amount: -500},
		{Date: date(2023, 7, 1), Amount: -500},
		{Date: date(2023, 10, 1), Amount: -500},
		{Date: date(2024, 1, 1), Amount: 2200},
	}

	rate := XIRRDefault(flows)
	require.NotNil(t, rate)
	assert.Greater(t, *rate, 0.0)
}

func TestXIRR_NegativeReturn(t *testing.T) {
	flows := []CashFlow{
		{Date: date(2023, 1, 1), Amount: -1000},
		{Date: date(2024, 1, 1), Amount: 800},
	}

	rate := XIRRDefault(flows)
	require.NotNil(t, rate)
	assert.InDelta(t, -0.20, *rate, 0.001)
}

func TestXIRR_NotApplicable(t *testing.T) {
	tests := []struct {
		name  string
		flows []CashFlow
	}{
		{
			name:  "empty",
			flows: nil,
		},
		{
			name: "single flow",
			flows: []CashFlow{
				{Date: date(2023, 1, 1), Amount: -1000},
			},
		},
		{
			name: "all negative (buys with no value appended)",
			flows: []CashFlow{
				{Date: date(2023, 1, 1), Amount: -1000},
				{Date: date(2023, 6, 1), Amount: -500},
			},
		},
		{
			name: "all positive",
			flows: []CashFlow{
				{Date: date(2023, 1, 1), Amount: 1000},
				{Date: date(2023, 6, 1), Amount: 500},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, XIRRDefault(tt.flows))
		})
	}
}

func TestXIRRPercent(t *testing.T) {
	flows := []CashFlow{
		{Date: date(2023, 1, 1), Amount: -1000},
		{Date: date(2024, 1, 1), Amount: 1100},
	}

	pct := XIRRPercent(flows)
	require.NotNil(t, pct)
	assert.InDelta(t, 10.0, *pct, 0.1)

	assert.Nil(t, XIRRPercent(nil))
}
