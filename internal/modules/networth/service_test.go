package networth

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatwa/nivesh/internal/config"
	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/mutualfunds"
	"github.com/rpatwa/nivesh/internal/modules/portfolio"
)

type stubSources struct {
	stocks    *portfolio.Summary
	funds     *mutualfunds.Summary
	fds       []domain.FixedDeposit
	epfs      []domain.EPFAccount
	npss      []domain.NPSAccount
	savings   []domain.SavingsAccount
	lendings  []domain.LendingRecord
	others    []domain.OtherInvestment
	stockTxns []domain.Transaction
	fundTxns  []mutualfunds.MFTransaction
}

func (s *stubSources) GetSummary() (*portfolio.Summary, error) { return s.stocks, nil }

type fundStub struct{ s *stubSources }

func (f fundStub) GetSummary() (*mutualfunds.Summary, error) { return f.s.funds, nil }

func (s *stubSources) GetFixedDeposits() ([]domain.FixedDeposit, error)     { return s.fds, nil }
func (s *stubSources) GetEPFAccounts() ([]domain.EPFAccount, error)         { return s.epfs, nil }
func (s *stubSources) GetNPSAccounts() ([]domain.NPSAccount, error)         { return s.npss, nil }
func (s *stubSources) GetSavingsAccounts() ([]domain.SavingsAccount, error) { return s.savings, nil }
func (s *stubSources) GetLendingRecords() ([]domain.LendingRecord, error)   { return s.lendings, nil }
func (s *stubSources) GetOtherInvestments() ([]domain.OtherInvestment, error) {
	return s.others, nil
}
func (s *stubSources) GetAll() ([]domain.Transaction, error) { return s.stockTxns, nil }

type fundTxnStub struct{ s *stubSources }

func (f fundTxnStub) GetAll() ([]mutualfunds.MFTransaction, error) { return f.s.fundTxns, nil }

func testService(src *stubSources) *Service {
	cfg := &config.Config{MFEquitySplit: 0.60, NPSEquitySplit: 0.50}
	return NewService(cfg, src, fundStub{src}, src, src, fundTxnStub{src}, zerolog.Nop())
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func emptySources() *stubSources {
	return &stubSources{
		stocks: &portfolio.Summary{},
		funds:  &mutualfunds.Summary{},
	}
}

func TestBuildSummaryAggregatesAllTypes(t *testing.T) {
	src := emptySources()
	src.stocks = &portfolio.Summary{TotalInvested: 100000}
	src.funds = &mutualfunds.Summary{TotalInvested: 50000}
	src.fds = []domain.FixedDeposit{
		{Principal: 30000, Status: domain.AssetStatusActive, StartDate: date("2023-01-01")},
		{Principal: 99999, Status: domain.AssetStatusClosed, StartDate: date("2020-01-01")},
	}
	src.epfs = []domain.EPFAccount{{CurrentBalance: 20000}}
	src.npss = []domain.NPSAccount{{CurrentValue: 10000}}
	src.savings = []domain.SavingsAccount{{CurrentBalance: 15000}}
	src.lendings = []domain.LendingRecord{{Outstanding: 5000, Status: domain.AssetStatusActive}}
	src.others = []domain.OtherInvestment{{PurchaseValue: 20000}}

	summary, err := testService(src).buildSummary(date("2024-06-01"))
	require.NoError(t, err)

	// closed FD excluded
	assert.Equal(t, 250000.0, summary.TotalNetWorth)
	require.Len(t, summary.Breakdown, 8)
	assert.Equal(t, TypeStocks, summary.Breakdown[0].Type)
	assert.Equal(t, 40.0, summary.Breakdown[0].Percent)
}

func TestBuildSummaryAllocationSplits(t *testing.T) {
	src := emptySources()
	src.stocks = &portfolio.Summary{TotalInvested: 50000}
	src.funds = &mutualfunds.Summary{TotalInvested: 30000}
	src.npss = []domain.NPSAccount{{CurrentValue: 10000}}
	src.savings = []domain.SavingsAccount{{CurrentBalance: 10000}}

	summary, err := testService(src).buildSummary(date("2024-06-01"))
	require.NoError(t, err)

	// equity: 50000 + 30000*0.6 + 10000*0.5 = 73000 of 100000
	assert.Equal(t, 73.0, summary.Allocation.EquityPct)
	// debt: 30000*0.4 + 10000*0.5 = 17000
	assert.Equal(t, 17.0, summary.Allocation.DebtPct)
	assert.Equal(t, 10.0, summary.Allocation.CashPct)
	assert.Equal(t, 0.0, summary.Allocation.AlternativePct)
}

func TestBuildSummaryLiquidity(t *testing.T) {
	src := emptySources()
	src.stocks = &portfolio.Summary{TotalInvested: 40000}
	src.funds = &mutualfunds.Summary{TotalInvested: 20000}
	src.savings = []domain.SavingsAccount{{CurrentBalance: 10000}}
	src.epfs = []domain.EPFAccount{{CurrentBalance: 30000}}

	summary, err := testService(src).buildSummary(date("2024-06-01"))
	require.NoError(t, err)

	assert.Equal(t, 70.0, summary.Liquidity.LiquidPct)
	assert.Equal(t, 30.0, summary.Liquidity.IlliquidPct)
}

func TestBuildSummaryDiversification(t *testing.T) {
	src := emptySources()
	src.stocks = &portfolio.Summary{TotalInvested: 50000}
	src.savings = []domain.SavingsAccount{{CurrentBalance: 50000}}

	summary, err := testService(src).buildSummary(date("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, summary.DiversificationHHI)

	concentrated := emptySources()
	concentrated.stocks = &portfolio.Summary{TotalInvested: 100000}
	summary, err = testService(concentrated).buildSummary(date("2024-06-01"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, summary.DiversificationHHI)
}

func TestBuildSummaryUnifiedXIRRCollapsesTodayInflows(t *testing.T) {
	src := emptySources()
	opening := date("2023-06-01")
	src.epfs = []domain.EPFAccount{{OpeningBalance: 1000, OpeningDate: &opening, CurrentBalance: 1100}}

	// one outflow of 1000 a year ago, one inflow of today's total net worth
	summary, err := testService(src).buildSummary(date("2024-06-01"))
	require.NoError(t, err)
	require.NotNil(t, summary.UnifiedXIRRPct)
	assert.InDelta(t, 10.0, *summary.UnifiedXIRRPct, 0.3)
}

func TestBuildSummaryEmpty(t *testing.T) {
	summary, err := testService(emptySources()).buildSummary(date("2024-06-01"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalNetWorth)
	assert.Empty(t, summary.Breakdown)
	assert.Nil(t, summary.UnifiedXIRRPct)
	assert.Equal(t, 1.0, summary.DiversificationHHI)
}
