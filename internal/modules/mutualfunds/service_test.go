package mutualfunds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func mfTxn(scheme, side string, units, nav, amount float64, on string) MFTransaction {
	return MFTransaction{
		SchemeCode: scheme,
		SchemeName: scheme + " Fund",
		Side:       side,
		Units:      units,
		NAV:        nav,
		Amount:     amount,
		Date:       date(on),
	}
}

func TestBuildSummaryAmountIsAuthoritative(t *testing.T) {
	// 100 units at NAV 10, but 1005 moved (entry load included)
	txns := []MFTransaction{
		mfTxn("HDFC-FLEXI", "BUY", 100, 10, 1005, "2024-01-01"),
	}

	summary := buildSummary(txns, date("2024-06-01"))
	require.Len(t, summary.Holdings, 1)
	h := summary.Holdings[0]

	assert.Equal(t, 1005.0, h.InvestedAmount)
	assert.InDelta(t, 10.05, h.AverageNAV, 0.0001)
	assert.Equal(t, 10.0, h.LatestNAV)
	assert.Equal(t, 1000.0, h.CurrentValue)
}

func TestBuildSummaryFIFORedemption(t *testing.T) {
	txns := []MFTransaction{
		mfTxn("ICICI-BLUE", "BUY", 100, 10, 1000, "2024-01-01"),
		mfTxn("ICICI-BLUE", "BUY", 100, 12, 1200, "2024-02-01"),
		mfTxn("ICICI-BLUE", "SELL", 100, 15, 1500, "2024-03-01"),
	}

	summary := buildSummary(txns, date("2024-06-01"))
	require.Len(t, summary.Holdings, 1)
	h := summary.Holdings[0]

	assert.Equal(t, 100.0, h.Units)
	assert.Equal(t, 1200.0, h.InvestedAmount)
	assert.Equal(t, 500.0, h.RealizedPnL)
	assert.Equal(t, 15.0, h.LatestNAV)
}

func TestBuildSummaryLatestNAVByDateNotInputOrder(t *testing.T) {
	txns := []MFTransaction{
		mfTxn("AXIS-MID", "BUY", 50, 20, 1000, "2024-03-01"),
		mfTxn("AXIS-MID", "BUY", 50, 15, 750, "2024-01-01"),
	}

	summary := buildSummary(txns, date("2024-06-01"))
	require.Len(t, summary.Holdings, 1)
	assert.Equal(t, 20.0, summary.Holdings[0].LatestNAV)
}

func TestBuildSummaryLiquidatedSchemeKeepsRealized(t *testing.T) {
	txns := []MFTransaction{
		mfTxn("SBI-SMALL", "BUY", 100, 10, 1000, "2024-01-01"),
		mfTxn("SBI-SMALL", "SELL", 100, 14, 1400, "2024-04-01"),
	}

	summary := buildSummary(txns, date("2024-06-01"))
	assert.Empty(t, summary.Holdings)
	assert.Equal(t, 400.0, summary.TotalRealizedPnL)
}

func TestBuildSummaryXIRR(t *testing.T) {
	txns := []MFTransaction{
		mfTxn("HDFC-FLEXI", "BUY", 100, 10, 1000, "2023-06-01"),
		mfTxn("HDFC-FLEXI", "BUY", 100, 11, 1100, "2023-06-01"),
	}
	// value after one year: 200 units at latest NAV 11 = 2200
	summary := buildSummary(txns, date("2024-06-01"))
	require.NotNil(t, summary.XIRRPct)
	assert.InDelta(t, 4.76, *summary.XIRRPct, 0.3)
}
