package portfolio

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/holdings"
	"github.com/rpatwa/nivesh/internal/modules/universe"
	"github.com/rpatwa/nivesh/pkg/formulas"
)

// StockLookup resolves a transaction symbol to its watchlist entry, which
// carries the last refreshed price.
type StockLookup interface {
	FindBySymbol(symbol string) (*universe.Stock, error)
}

// Service computes portfolio state from the transaction history.
type Service struct {
	txns   *TransactionRepository
	stocks StockLookup
	log    zerolog.Logger
}

// NewService creates a new portfolio service
func NewService(txns *TransactionRepository, stocks StockLookup, log zerolog.Logger) *Service {
	return &Service{
		txns:   txns,
		stocks: stocks,
		log:    log.With().Str("service", "portfolio").Logger(),
	}
}

// GetSummary replays the full transaction history into open holdings and
// enriches them with the latest stored prices. Holdings with no price keep
// nil market fields rather than being dropped.
func (s *Service) GetSummary() (*Summary, error) {
	txns, err := s.txns.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return s.buildSummary(txns, time.Now()), nil
}

func (s *Service) buildSummary(txns []domain.Transaction, today time.Time) *Summary {
	computed := holdings.Compute(txns, today)

	summary := &Summary{Holdings: make([]HoldingView, 0, len(computed))}

	var dayChangeWeighted, dayChangeBase float64
	for _, h := range computed {
		summary.TotalRealizedPnL += h.RealizedPnL
		if h.Quantity < 0 {
			summary.OversoldSymbols = append(summary.OversoldSymbols, h.Symbol)
		}
	}

	for _, h := range holdings.Active(computed) {
		view := HoldingView{
			Symbol:            h.Symbol,
			Name:              h.Name,
			Quantity:          h.Quantity,
			AverageCost:       formulas.Round(h.AverageCost, 2),
			InvestedAmount:    formulas.Round(h.InvestedAmount, 2),
			RealizedPnL:       h.RealizedPnL,
			HoldingPeriodDays: formulas.Round(h.HoldingPeriodDays, 1),
		}

		stock, err := s.stocks.FindBySymbol(h.Symbol)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", h.Symbol).Msg("Failed to look up stock")
		}
		if stock != nil && stock.CurrentPrice != nil {
			price := *stock.CurrentPrice
			marketValue := formulas.Round(price*h.Quantity, 2)
			unrealized := formulas.Round(marketValue-h.InvestedAmount, 2)

			view.CurrentPrice = &price
			view.MarketValue = &marketValue
			view.UnrealizedPnL = &unrealized
			if h.InvestedAmount > 0 {
				pct := formulas.Round(unrealized/h.InvestedAmount*100, 2)
				view.UnrealizedPnLPct = &pct
			}
			view.DayChangePct = stock.DayChangePct

			summary.TotalMarketValue += marketValue
			summary.TotalUnrealizedPnL += unrealized
			if stock.DayChangePct != nil {
				dayChangeWeighted += *stock.DayChangePct * marketValue
				dayChangeBase += marketValue
			}
		}

		summary.TotalInvested += view.InvestedAmount
		summary.Holdings = append(summary.Holdings, view)
	}

	for i := range summary.Holdings {
		if summary.TotalMarketValue > 0 && summary.Holdings[i].MarketValue != nil {
			summary.Holdings[i].PortfolioPct = formulas.Round(*summary.Holdings[i].MarketValue/summary.TotalMarketValue*100, 2)
		}
	}

	summary.TotalInvested = formulas.Round(summary.TotalInvested, 2)
	summary.TotalMarketValue = formulas.Round(summary.TotalMarketValue, 2)
	summary.TotalUnrealizedPnL = formulas.Round(summary.TotalUnrealizedPnL, 2)
	summary.TotalRealizedPnL = formulas.Round(summary.TotalRealizedPnL, 2)

	if dayChangeBase > 0 {
		dayChange := formulas.Round(dayChangeWeighted/dayChangeBase, 2)
		summary.DayChangePct = &dayChange
	}

	summary.XIRRPct = xirrFromTransactions(txns, summary.TotalMarketValue, today)

	return summary
}

// GetXIRR returns the annualized money-weighted return of the stock
// portfolio, or nil when it cannot be computed.
func (s *Service) GetXIRR() (*float64, error) {
	summary, err := s.GetSummary()
	if err != nil {
		return nil, err
	}
	return summary.XIRRPct, nil
}

// xirrFromTransactions maps buys to outflows and sells to inflows, then
// closes the series with the current market value as a final inflow today.
func xirrFromTransactions(txns []domain.Transaction, marketValue float64, today time.Time) *float64 {
	flows := make([]formulas.CashFlow, 0, len(txns)+1)
	for _, txn := range txns {
		amount := txn.Amount
		if txn.Side == domain.TxnSideBuy {
			amount = -amount
		}
		flows = append(flows, formulas.CashFlow{Date: txn.Date, Amount: amount})
	}
	if marketValue > 0 {
		flows = append(flows, formulas.CashFlow{Date: today, Amount: marketValue})
	}
	return formulas.XIRRPercent(flows)
}
