package portfolio

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/universe"
)

type stubLookup struct {
	prices map[string]float64
}

func (s *stubLookup) FindBySymbol(symbol string) (*universe.Stock, error) {
	price, ok := s.prices[symbol]
	if !ok {
		return nil, nil
	}
	return &universe.Stock{Symbol: symbol, CurrentPrice: &price}, nil
}

func testService(prices map[string]float64) *Service {
	return &Service{
		stocks: &stubLookup{prices: prices},
		log:    zerolog.Nop(),
	}
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func txn(symbol string, side domain.TxnSide, qty, price float64, on string) domain.Transaction {
	return domain.Transaction{
		Symbol:   symbol,
		Side:     side,
		Quantity: qty,
		Price:    price,
		Amount:   qty * price,
		Date:     date(on),
	}
}

func TestBuildSummaryEnrichesWithPrices(t *testing.T) {
	svc := testService(map[string]float64{"ABC": 150})
	txns := []domain.Transaction{
		txn("ABC", domain.TxnSideBuy, 10, 100, "2024-01-01"),
	}

	summary := svc.buildSummary(txns, date("2024-06-01"))
	require.Len(t, summary.Holdings, 1)
	h := summary.Holdings[0]

	assert.Equal(t, 10.0, h.Quantity)
	assert.Equal(t, 1000.0, h.InvestedAmount)
	require.NotNil(t, h.MarketValue)
	assert.Equal(t, 1500.0, *h.MarketValue)
	require.NotNil(t, h.UnrealizedPnL)
	assert.Equal(t, 500.0, *h.UnrealizedPnL)
	require.NotNil(t, h.UnrealizedPnLPct)
	assert.Equal(t, 50.0, *h.UnrealizedPnLPct)
	assert.Equal(t, 100.0, h.PortfolioPct)

	assert.Equal(t, 1000.0, summary.TotalInvested)
	assert.Equal(t, 1500.0, summary.TotalMarketValue)
}

func TestBuildSummaryKeepsUnpricedHoldings(t *testing.T) {
	svc := testService(map[string]float64{"ABC": 150})
	txns := []domain.Transaction{
		txn("ABC", domain.TxnSideBuy, 10, 100, "2024-01-01"),
		txn("XYZ", domain.TxnSideBuy, 5, 200, "2024-01-01"),
	}

	summary := svc.buildSummary(txns, date("2024-06-01"))
	require.Len(t, summary.Holdings, 2)

	var unpriced *HoldingView
	for i := range summary.Holdings {
		if summary.Holdings[i].Symbol == "XYZ" {
			unpriced = &summary.Holdings[i]
		}
	}
	require.NotNil(t, unpriced)
	assert.Nil(t, unpriced.MarketValue)
	assert.Equal(t, 1000.0, unpriced.InvestedAmount)

	// totals include the unpriced cost basis but only priced market value
	assert.Equal(t, 2000.0, summary.TotalInvested)
	assert.Equal(t, 1500.0, summary.TotalMarketValue)
}

func TestBuildSummaryRealizedSurvivesLiquidation(t *testing.T) {
	svc := testService(nil)
	txns := []domain.Transaction{
		txn("ABC", domain.TxnSideBuy, 10, 100, "2024-01-01"),
		txn("ABC", domain.TxnSideSell, 10, 150, "2024-02-01"),
	}

	summary := svc.buildSummary(txns, date("2024-06-01"))
	assert.Empty(t, summary.Holdings)
	assert.Equal(t, 500.0, summary.TotalRealizedPnL)
}

func TestBuildSummaryFlagsOversoldSymbols(t *testing.T) {
	svc := testService(nil)
	txns := []domain.Transaction{
		txn("ABC", domain.TxnSideBuy, 5, 100, "2024-01-01"),
		txn("ABC", domain.TxnSideSell, 8, 120, "2024-02-01"),
	}

	summary := svc.buildSummary(txns, date("2024-06-01"))
	assert.Equal(t, []string{"ABC"}, summary.OversoldSymbols)
}

func TestBuildSummaryXIRRSingleHolding(t *testing.T) {
	svc := testService(map[string]float64{"ABC": 110})
	txns := []domain.Transaction{
		txn("ABC", domain.TxnSideBuy, 10, 100, "2023-06-01"),
	}

	// 1000 -> 1100 over exactly one year
	summary := svc.buildSummary(txns, date("2024-06-01"))
	require.NotNil(t, summary.XIRRPct)
	assert.InDelta(t, 10.0, *summary.XIRRPct, 0.2)
}

func TestBuildSummaryXIRRNilWithoutPrices(t *testing.T) {
	svc := testService(nil)
	txns := []domain.Transaction{
		txn("ABC", domain.TxnSideBuy, 10, 100, "2024-01-01"),
	}

	summary := svc.buildSummary(txns, date("2024-06-01"))
	assert.Nil(t, summary.XIRRPct)
}
