package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/universe"
)

// StockStore is the slice of the stock repository the refresh job needs.
type StockStore interface {
	GetAll() ([]universe.Stock, error)
	UpdatePrice(id int64, price float64, dayChangePct *float64) error
}

// PriceRefreshJob walks the watchlist and stores a fresh quote for each
// stock. Individual failures are logged and skipped so one dead symbol
// cannot starve the rest.
type PriceRefreshJob struct {
	stocks   StockStore
	provider domain.PriceProvider
	log      zerolog.Logger
}

// NewPriceRefreshJob creates a new price refresh job
func NewPriceRefreshJob(stocks StockStore, provider domain.PriceProvider, log zerolog.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		stocks:   stocks,
		provider: provider,
		log:      log.With().Str("job", "price_refresh").Logger(),
	}
}

// Name returns the job name
func (j *PriceRefreshJob) Name() string {
	return "price_refresh"
}

// Run refreshes prices for every tracked stock
func (j *PriceRefreshJob) Run() error {
	stocks, err := j.stocks.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load stocks: %w", err)
	}

	var failed int
	for _, stock := range stocks {
		quote, err := j.provider.GetQuote(stock.Symbol)
		if err != nil {
			j.log.Warn().Err(err).Str("symbol", stock.Symbol).Msg("Failed to fetch quote")
			failed++
			continue
		}

		if err := j.stocks.UpdatePrice(stock.ID, quote.Price, quote.DayChangePct); err != nil {
			j.log.Error().Err(err).Str("symbol", stock.Symbol).Msg("Failed to store price")
			failed++
		}
	}

	j.log.Info().
		Int("total", len(stocks)).
		Int("failed", failed).
		Msg("Price refresh finished")

	if failed == len(stocks) && len(stocks) > 0 {
		return fmt.Errorf("all %d price refreshes failed", failed)
	}
	return nil
}
