package health

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatwa/nivesh/internal/modules/portfolio"
	"github.com/rpatwa/nivesh/internal/modules/universe"
)

type stubLookup struct {
	stocks map[string]*universe.Stock
}

func (s *stubLookup) FindBySymbol(symbol string) (*universe.Stock, error) {
	return s.stocks[symbol], nil
}

func testService(stocks map[string]*universe.Stock) *Service {
	return &Service{
		stocks: &stubLookup{stocks: stocks},
		log:    zerolog.Nop(),
	}
}

func holding(symbol string, pct float64) portfolio.HoldingView {
	return portfolio.HoldingView{Symbol: symbol, PortfolioPct: pct}
}

func stock(symbol, sector, marketCap string) *universe.Stock {
	return &universe.Stock{Symbol: symbol, Sector: sector, MarketCap: marketCap}
}

func TestBuildReportConcentration(t *testing.T) {
	svc := testService(nil)
	summary := &portfolio.Summary{Holdings: []portfolio.HoldingView{
		holding("A", 30), holding("B", 25), holding("C", 20),
		holding("D", 15), holding("E", 10),
	}}

	report := svc.buildReport(summary)
	assert.Equal(t, 5, report.HoldingCount)
	assert.Equal(t, 75.0, report.Top3ConcentrationPct)
	// 75% in top 3 is 35 points into the 60-point decay range
	assert.Equal(t, 41.67, report.ConcentrationScore)
}

func TestBuildReportSectorAndCapBreakdown(t *testing.T) {
	svc := testService(map[string]*universe.Stock{
		"A": stock("A", "IT", "Large Cap"),
		"B": stock("B", "IT", "Mid Cap"),
		"C": stock("C", "Banking", "Large Cap"),
	})
	summary := &portfolio.Summary{Holdings: []portfolio.HoldingView{
		holding("A", 50), holding("B", 30), holding("C", 20),
	}}

	report := svc.buildReport(summary)
	require.Len(t, report.Sectors, 2)
	assert.Equal(t, SectorWeight{Sector: "IT", Percent: 80}, report.Sectors[0])
	require.Len(t, report.MarketCaps, 2)
	assert.Equal(t, CapWeight{MarketCap: "Large Cap", Percent: 70}, report.MarketCaps[0])
}

func TestBuildReportUnknownStocksBucketed(t *testing.T) {
	svc := testService(nil)
	summary := &portfolio.Summary{Holdings: []portfolio.HoldingView{holding("ZZZ", 100)}}

	report := svc.buildReport(summary)
	require.Len(t, report.Sectors, 1)
	assert.Equal(t, "Unknown", report.Sectors[0].Sector)
	// unknown market cap has no position limit
	assert.Empty(t, report.Violations)
}

func TestBuildReportViolations(t *testing.T) {
	svc := testService(map[string]*universe.Stock{
		"BIG":   stock("BIG", "IT", "Large Cap"),
		"EDGE":  stock("EDGE", "IT", "Large Cap"),
		"SMALL": stock("SMALL", "IT", "Small Cap"),
	})
	summary := &portfolio.Summary{Holdings: []portfolio.HoldingView{
		holding("BIG", 8),    // over the 5% large cap limit
		holding("EDGE", 5.4), // inside the tolerance band
		holding("SMALL", 3),  // over the 2% small cap limit
	}}

	report := svc.buildReport(summary)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, "BIG", report.Violations[0].Symbol)
	assert.Equal(t, 5.0, report.Violations[0].LimitPct)
	assert.Equal(t, "SMALL", report.Violations[1].Symbol)
	assert.Equal(t, 80.0, report.AllocationScore)
}

func TestBuildReportDiversificationScore(t *testing.T) {
	svc := testService(nil)

	spread := &portfolio.Summary{Holdings: []portfolio.HoldingView{
		holding("A", 25), holding("B", 25), holding("C", 25), holding("D", 25),
	}}
	report := svc.buildReport(spread)
	assert.Equal(t, 0.25, report.HHI)
	// 4 of 15 stocks scores 26.67 at 30% weight, HHI 0.25 scores 75 at 20%;
	// no known sectors or caps
	assert.Equal(t, 23.0, report.DiversificationScore)

	single := &portfolio.Summary{Holdings: []portfolio.HoldingView{holding("A", 100)}}
	report = svc.buildReport(single)
	assert.Equal(t, 1.0, report.HHI)
	assert.Equal(t, 2.0, report.DiversificationScore)
}

func TestBuildReportDiversificationComposite(t *testing.T) {
	svc := testService(map[string]*universe.Stock{
		"A": stock("A", "IT", "Large Cap"),
		"B": stock("B", "Banking", "Mid Cap"),
		"C": stock("C", "Banking", "Mid Cap"),
	})
	summary := &portfolio.Summary{Holdings: []portfolio.HoldingView{
		holding("A", 40), holding("B", 30), holding("C", 30),
	}}

	report := svc.buildReport(summary)
	assert.Equal(t, 0.34, report.HHI)
	// 3 stocks = 20, 2 sectors = 25, 2 cap buckets = 50, HHI 0.34 = 66,
	// weighted 30/30/20/20
	assert.Equal(t, 36.7, report.DiversificationScore)
}

func TestBuildReportEmptyPortfolio(t *testing.T) {
	report := testService(nil).buildReport(&portfolio.Summary{})
	assert.Equal(t, 0, report.HoldingCount)
	assert.Equal(t, 0.0, report.OverallScore)
}

func TestBuildReportOverallScoreWeights(t *testing.T) {
	svc := testService(nil)
	summary := &portfolio.Summary{Holdings: []portfolio.HoldingView{
		holding("A", 25), holding("B", 25), holding("C", 25), holding("D", 25),
	}}

	report := svc.buildReport(summary)
	// diversification 23 at 40%, concentration 41.67 at 30%, allocation 100
	// at 30%
	assert.Equal(t, 51.7, report.OverallScore)
}
