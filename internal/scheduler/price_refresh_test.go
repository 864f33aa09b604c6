package scheduler

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/universe"
)

type stubStore struct {
	stocks  []universe.Stock
	updated map[int64]float64
}

func (s *stubStore) GetAll() ([]universe.Stock, error) { return s.stocks, nil }

func (s *stubStore) UpdatePrice(id int64, price float64, dayChangePct *float64) error {
	if s.updated == nil {
		s.updated = make(map[int64]float64)
	}
	s.updated[id] = price
	return nil
}

type stubProvider struct {
	prices map[string]float64
}

func (p *stubProvider) GetQuote(symbol string) (*domain.Quote, error) {
	price, ok := p.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}
	return &domain.Quote{Symbol: symbol, Price: price}, nil
}

func TestPriceRefreshUpdatesAllStocks(t *testing.T) {
	store := &stubStore{stocks: []universe.Stock{
		{ID: 1, Symbol: "ABC"},
		{ID: 2, Symbol: "XYZ"},
	}}
	provider := &stubProvider{prices: map[string]float64{"ABC": 100, "XYZ": 200}}

	job := NewPriceRefreshJob(store, provider, zerolog.Nop())
	require.NoError(t, job.Run())

	assert.Equal(t, 100.0, store.updated[1])
	assert.Equal(t, 200.0, store.updated[2])
}

func TestPriceRefreshSkipsFailedSymbols(t *testing.T) {
	store := &stubStore{stocks: []universe.Stock{
		{ID: 1, Symbol: "ABC"},
		{ID: 2, Symbol: "DEAD"},
	}}
	provider := &stubProvider{prices: map[string]float64{"ABC": 100}}

	job := NewPriceRefreshJob(store, provider, zerolog.Nop())
	require.NoError(t, job.Run())

	assert.Equal(t, 100.0, store.updated[1])
	_, ok := store.updated[2]
	assert.False(t, ok)
}

func TestPriceRefreshErrorsWhenAllFail(t *testing.T) {
	store := &stubStore{stocks: []universe.Stock{{ID: 1, Symbol: "DEAD"}}}
	provider := &stubProvider{}

	job := NewPriceRefreshJob(store, provider, zerolog.Nop())
	assert.Error(t, job.Run())
}

func TestPriceRefreshEmptyWatchlist(t *testing.T) {
	job := NewPriceRefreshJob(&stubStore{}, &stubProvider{}, zerolog.Nop())
	assert.NoError(t, job.Run())
}
