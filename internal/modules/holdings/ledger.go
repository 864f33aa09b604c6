// Package holdings implements FIFO lot accounting over transaction histories.
//
// Transactions for an instrument are replayed in date order: buys open lots,
// sells consume the oldest open lots first. The remaining lots carry the cost
// basis and age of the position; consumed lots accumulate realized profit.
package holdings

import (
	"sort"
	"time"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/universe"
	"github.com/rpatwa/nivesh/pkg/formulas"
)

// Lot is an open purchase parcel. UnitCost is the effective per-unit cost,
// derived from the transaction amount so that fees folded into the amount
// are part of the basis.
type Lot struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
	UnitCost float64   `json:"unit_cost"`
}

// Holding is the replayed state of one instrument.
type Holding struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Quantity          float64 `json:"quantity"`
	InvestedAmount    float64 `json:"invested_amount"`
	AverageCost       float64 `json:"average_cost"`
	RealizedPnL       float64 `json:"realized_pnl"`
	HoldingPeriodDays float64 `json:"holding_period_days"`
	Lots              []Lot   `json:"lots,omitempty"`
}

// Compute replays transactions into per-instrument holdings, keyed by
// normalized symbol. Transactions with different exchange suffixes for the
// same instrument merge into one holding; the first-seen literal symbol is
// kept for display.
//
// The ledger does not validate financial fields. A sell larger than the open
// lots drives Quantity negative rather than erroring, and a zero or negative
// transaction quantity flows through the arithmetic unchanged; rejecting such
// records is the recorder's job.
// Fully liquidated holdings stay in the result so realized profit is not
// lost. Holding period is the quantity-weighted mean age in days of the
// remaining lots as of today.
func Compute(txns []domain.Transaction, today time.Time) map[string]Holding {
	sorted := make([]domain.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	type state struct {
		symbol   string
		name     string
		lots     []Lot
		oversold float64
		realized float64
	}

	states := make(map[string]*state)
	order := make([]string, 0)

	for _, txn := range sorted {
		key := universe.Normalize(txn.Symbol)
		st, ok := states[key]
		if !ok {
			st = &state{symbol: txn.Symbol, name: txn.Name}
			states[key] = st
			order = append(order, key)
		}
		if st.name == "" {
			st.name = txn.Name
		}

		unitAmount := txn.Price
		if txn.Amount > 0 && txn.Quantity != 0 {
			unitAmount = txn.Amount / txn.Quantity
		}

		switch txn.Side {
		case domain.TxnSideBuy:
			st.lots = append(st.lots, Lot{
				Date:     txn.Date,
				Quantity: txn.Quantity,
				UnitCost: unitAmount,
			})

		case domain.TxnSideSell:
			remaining := txn.Quantity
			for remaining > 0 && len(st.lots) > 0 {
				lot := &st.lots[0]
				consumed := lot.Quantity
				if consumed > remaining {
					consumed = remaining
				}
				st.realized += (unitAmount - lot.UnitCost) * consumed
				lot.Quantity -= consumed
				remaining -= consumed
				if lot.Quantity <= 0 {
					st.lots = st.lots[1:]
				}
			}
			st.oversold += remaining
		}
	}

	result := make(map[string]Holding, len(states))
	for _, key := range order {
		st := states[key]

		var quantity, invested, weightedAge float64
		for _, lot := range st.lots {
			quantity += lot.Quantity
			invested += lot.Quantity * lot.UnitCost
			age := today.Sub(lot.Date).Hours() / 24
			weightedAge += age * lot.Quantity
		}

		h := Holding{
			Symbol:         st.symbol,
			Name:           st.name,
			Quantity:       quantity - st.oversold,
			InvestedAmount: invested,
			RealizedPnL:    formulas.Round(st.realized, 2),
			Lots:           st.lots,
		}
		if quantity > 0 {
			h.AverageCost = invested / quantity
			h.HoldingPeriodDays = weightedAge / quantity
		}

		result[key] = h
	}

	return result
}

// Active filters a computed holdings map down to positions with open
// quantity, in a deterministic symbol order.
func Active(all map[string]Holding) []Holding {
	keys := make([]string, 0, len(all))
	for key := range all {
		if all[key].Quantity > 0 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	active := make([]Holding, 0, len(keys))
	for _, key := range keys {
		active = append(active, all[key])
	}
	return active
}
