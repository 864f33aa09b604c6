// Package networth aggregates every tracked asset type into one picture:
// total net worth, per-type breakdown, class allocation and a unified
// money-weighted return.
package networth

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/config"
	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/mutualfunds"
	"github.com/rpatwa/nivesh/internal/modules/portfolio"
	"github.com/rpatwa/nivesh/pkg/formulas"
)

// PortfolioSource supplies the stock portfolio roll-up.
type PortfolioSource interface {
	GetSummary() (*portfolio.Summary, error)
}

// FundSource supplies the mutual fund roll-up.
type FundSource interface {
	GetSummary() (*mutualfunds.Summary, error)
}

// AssetSource supplies the balance-style assets.
type AssetSource interface {
	GetFixedDeposits() ([]domain.FixedDeposit, error)
	GetEPFAccounts() ([]domain.EPFAccount, error)
	GetNPSAccounts() ([]domain.NPSAccount, error)
	GetSavingsAccounts() ([]domain.SavingsAccount, error)
	GetLendingRecords() ([]domain.LendingRecord, error)
	GetOtherInvestments() ([]domain.OtherInvestment, error)
}

// StockTransactionSource supplies raw stock transactions for the unified
// cash flow series.
type StockTransactionSource interface {
	GetAll() ([]domain.Transaction, error)
}

// FundTransactionSource supplies raw mutual fund transactions for the
// unified cash flow series.
type FundTransactionSource interface {
	GetAll() ([]mutualfunds.MFTransaction, error)
}

// Service aggregates all asset types.
type Service struct {
	cfg       *config.Config
	portfolio PortfolioSource
	funds     FundSource
	assets    AssetSource
	stockTxns StockTransactionSource
	fundTxns  FundTransactionSource
	log       zerolog.Logger
}

// NewService creates a new net worth service
func NewService(cfg *config.Config, portfolioSrc PortfolioSource, funds FundSource,
	assets AssetSource, stockTxns StockTransactionSource, fundTxns FundTransactionSource,
	log zerolog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		portfolio: portfolioSrc,
		funds:     funds,
		assets:    assets,
		stockTxns: stockTxns,
		fundTxns:  fundTxns,
		log:       log.With().Str("service", "networth").Logger(),
	}
}

// GetSummary computes the full net worth picture as of now.
func (s *Service) GetSummary() (*Summary, error) {
	return s.buildSummary(time.Now())
}

func (s *Service) buildSummary(today time.Time) (*Summary, error) {
	stockSummary, err := s.portfolio.GetSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to load stock portfolio: %w", err)
	}
	fundSummary, err := s.funds.GetSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to load mutual funds: %w", err)
	}

	values := map[string]float64{}

	// equities and mutual funds enter net worth at cost basis; market
	// movement is reported through the per-type returns, not the total
	values[TypeStocks] = stockSummary.TotalInvested
	values[TypeMutualFunds] = fundSummary.TotalInvested

	fds, err := s.assets.GetFixedDeposits()
	if err != nil {
		return nil, fmt.Errorf("failed to load fixed deposits: %w", err)
	}
	for _, fd := range fds {
		if fd.Status != domain.AssetStatusActive {
			continue
		}
		values[TypeFixedDeposits] += fd.Principal
	}

	epfs, err := s.assets.GetEPFAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load epf accounts: %w", err)
	}
	for _, acct := range epfs {
		values[TypeEPF] += acct.CurrentBalance
	}

	npss, err := s.assets.GetNPSAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load nps accounts: %w", err)
	}
	for _, acct := range npss {
		values[TypeNPS] += acct.CurrentValue
	}

	savings, err := s.assets.GetSavingsAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load savings accounts: %w", err)
	}
	for _, acct := range savings {
		values[TypeSavings] += acct.CurrentBalance
	}

	lendings, err := s.assets.GetLendingRecords()
	if err != nil {
		return nil, fmt.Errorf("failed to load lending records: %w", err)
	}
	for _, rec := range lendings {
		if rec.Status != domain.AssetStatusActive {
			continue
		}
		values[TypeLending] += rec.Outstanding
	}

	others, err := s.assets.GetOtherInvestments()
	if err != nil {
		return nil, fmt.Errorf("failed to load other investments: %w", err)
	}
	for _, inv := range others {
		values[TypeOther] += inv.Value()
	}

	summary := &Summary{}
	for _, v := range values {
		summary.TotalNetWorth += v
	}

	order := []string{TypeStocks, TypeMutualFunds, TypeFixedDeposits, TypeEPF,
		TypeNPS, TypeSavings, TypeLending, TypeOther}
	shares := make([]float64, 0, len(order))
	for _, assetType := range order {
		value := values[assetType]
		if value == 0 {
			continue
		}
		pct := 0.0
		if summary.TotalNetWorth > 0 {
			pct = formulas.Round(value/summary.TotalNetWorth*100, 2)
		}
		summary.Breakdown = append(summary.Breakdown, TypeValue{
			Type:    assetType,
			Value:   formulas.Round(value, 2),
			Percent: pct,
		})
		shares = append(shares, value)
	}

	summary.Allocation = s.allocate(values, summary.TotalNetWorth)
	summary.Liquidity = liquidity(values, summary.TotalNetWorth)
	summary.DiversificationHHI = formulas.Round(formulas.Herfindahl(shares), 4)
	summary.TotalNetWorth = formulas.Round(summary.TotalNetWorth, 2)

	summary.StocksXIRRPct = stockSummary.XIRRPct
	summary.MutualFundsXIRRPct = fundSummary.XIRRPct
	summary.UnifiedXIRRPct = s.unifiedXIRR(summary.TotalNetWorth, today)

	return summary, nil
}

// allocate maps asset types onto equity/debt/cash/alternative classes.
// Mutual funds and NPS hold both equity and debt, split by configured
// ratios since scheme compositions are not tracked.
func (s *Service) allocate(values map[string]float64, total float64) Allocation {
	if total <= 0 {
		return Allocation{}
	}

	equity := values[TypeStocks] + values[TypeMutualFunds]*s.cfg.MFEquitySplit + values[TypeNPS]*s.cfg.NPSEquitySplit
	debt := values[TypeFixedDeposits] + values[TypeEPF] + values[TypeLending] +
		values[TypeMutualFunds]*(1-s.cfg.MFEquitySplit) + values[TypeNPS]*(1-s.cfg.NPSEquitySplit)
	cash := values[TypeSavings]
	alternative := values[TypeOther]

	return Allocation{
		EquityPct:      formulas.Round(equity/total*100, 2),
		DebtPct:        formulas.Round(debt/total*100, 2),
		CashPct:        formulas.Round(cash/total*100, 2),
		AlternativePct: formulas.Round(alternative/total*100, 2),
	}
}

func liquidity(values map[string]float64, total float64) Liquidity {
	if total <= 0 {
		return Liquidity{}
	}
	liquid := values[TypeStocks] + values[TypeMutualFunds] + values[TypeSavings]
	return Liquidity{
		LiquidPct:   formulas.Round(liquid/total*100, 2),
		IlliquidPct: formulas.Round((total-liquid)/total*100, 2),
	}
}

// unifiedXIRR builds one cash flow series across every asset: stock and
// fund transactions plus the opening outflows of balance assets, closed by
// a single inflow of today's total net worth.
func (s *Service) unifiedXIRR(totalNetWorth float64, today time.Time) *float64 {
	flows := make([]formulas.CashFlow, 0)

	stockTxns, err := s.stockTxns.GetAll()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load stock transactions for unified XIRR")
		return nil
	}
	for _, txn := range stockTxns {
		amount := txn.Amount
		if txn.Side == domain.TxnSideBuy {
			amount = -amount
		}
		flows = append(flows, formulas.CashFlow{Date: txn.Date, Amount: amount})
	}

	fundTxns, err := s.fundTxns.GetAll()
	if err != nil {
		s.log.Warn().Err(err).Msg("Failed to load fund transactions for unified XIRR")
		return nil
	}
	for _, txn := range fundTxns {
		side, err := domain.TxnSideFromString(txn.Side)
		if err != nil {
			continue
		}
		amount := txn.Amount
		if side == domain.TxnSideBuy {
			amount = -amount
		}
		flows = append(flows, formulas.CashFlow{Date: txn.Date, Amount: amount})
	}

	if fds, err := s.assets.GetFixedDeposits(); err == nil {
		for _, fd := range fds {
			if fd.Status == domain.AssetStatusActive {
				flows = append(flows, formulas.CashFlow{Date: fd.StartDate, Amount: -fd.Principal})
			}
		}
	}
	if epfs, err := s.assets.GetEPFAccounts(); err == nil {
		for _, acct := range epfs {
			if acct.OpeningDate != nil && acct.OpeningBalance > 0 {
				flows = append(flows, formulas.CashFlow{Date: *acct.OpeningDate, Amount: -acct.OpeningBalance})
			}
		}
	}
	if npss, err := s.assets.GetNPSAccounts(); err == nil {
		for _, acct := range npss {
			if acct.OpeningDate != nil && acct.OpeningBalance > 0 {
				flows = append(flows, formulas.CashFlow{Date: *acct.OpeningDate, Amount: -acct.OpeningBalance})
			}
		}
	}

	if totalNetWorth > 0 {
		flows = append(flows, formulas.CashFlow{Date: today, Amount: totalNetWorth})
	}

	return formulas.XIRRPercent(flows)
}
