package mutualfunds

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/holdings"
	"github.com/rpatwa/nivesh/pkg/formulas"
)

// Service computes mutual fund holdings from the transaction history.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new mutual fund service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "mutualfunds").Logger(),
	}
}

// GetSummary replays all mutual fund transactions into per-scheme holdings.
func (s *Service) GetSummary() (*Summary, error) {
	txns, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load mutual fund transactions: %w", err)
	}
	return buildSummary(txns, time.Now()), nil
}

// buildSummary runs the shared FIFO ledger over the fund transactions. The
// ledger keys on scheme code; Amount carries the cost basis so entry loads
// folded into the purchase amount are accounted for.
func buildSummary(txns []MFTransaction, today time.Time) *Summary {
	ledgerTxns := make([]domain.Transaction, 0, len(txns))
	latestNAV := make(map[string]float64)
	latestDate := make(map[string]time.Time)

	for _, txn := range txns {
		side, err := domain.TxnSideFromString(txn.Side)
		if err != nil {
			continue
		}
		ledgerTxns = append(ledgerTxns, domain.Transaction{
			Symbol:   txn.SchemeCode,
			Name:     txn.SchemeName,
			Side:     side,
			Quantity: txn.Units,
			Price:    txn.NAV,
			Amount:   txn.Amount,
			Date:     txn.Date,
		})
		if txn.NAV > 0 && !txn.Date.Before(latestDate[txn.SchemeCode]) {
			latestDate[txn.SchemeCode] = txn.Date
			latestNAV[txn.SchemeCode] = txn.NAV
		}
	}

	computed := holdings.Compute(ledgerTxns, today)

	summary := &Summary{Holdings: make([]SchemeHolding, 0, len(computed))}
	for _, h := range computed {
		summary.TotalRealizedPnL += h.RealizedPnL
	}

	for _, h := range holdings.Active(computed) {
		nav := latestNAV[h.Symbol]
		value := formulas.Round(nav*h.Quantity, 2)

		holding := SchemeHolding{
			SchemeCode:        h.Symbol,
			SchemeName:        h.Name,
			Units:             formulas.Round(h.Quantity, 4),
			InvestedAmount:    formulas.Round(h.InvestedAmount, 2),
			AverageNAV:        formulas.Round(h.AverageCost, 4),
			LatestNAV:         nav,
			CurrentValue:      value,
			UnrealizedPnL:     formulas.Round(value-h.InvestedAmount, 2),
			RealizedPnL:       h.RealizedPnL,
			HoldingPeriodDays: formulas.Round(h.HoldingPeriodDays, 1),
		}

		summary.TotalInvested += holding.InvestedAmount
		summary.TotalValue += holding.CurrentValue
		summary.Holdings = append(summary.Holdings, holding)
	}

	sort.Slice(summary.Holdings, func(i, j int) bool {
		return summary.Holdings[i].CurrentValue > summary.Holdings[j].CurrentValue
	})

	summary.TotalInvested = formulas.Round(summary.TotalInvested, 2)
	summary.TotalValue = formulas.Round(summary.TotalValue, 2)
	summary.TotalRealizedPnL = formulas.Round(summary.TotalRealizedPnL, 2)
	summary.XIRRPct = xirrFromMFTransactions(txns, summary.TotalValue, today)

	return summary
}

// GetXIRR returns the annualized money-weighted return across all schemes.
func (s *Service) GetXIRR() (*float64, error) {
	summary, err := s.GetSummary()
	if err != nil {
		return nil, err
	}
	return summary.XIRRPct, nil
}

func xirrFromMFTransactions(txns []MFTransaction, totalValue float64, today time.Time) *float64 {
	flows := make([]formulas.CashFlow, 0, len(txns)+1)
	for _, txn := range txns {
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
	if totalValue > 0 {
		flows = append(flows, formulas.CashFlow{Date: today, Amount: totalValue})
	}
	return formulas.XIRRPercent(flows)
}
