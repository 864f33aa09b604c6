package universe

import "time"

// Stock status values. HOLD means the portfolio currently has a position;
// the other statuses are user-managed watchlist states.
const (
	StatusWatching = "WATCHING"
	StatusHold     = "HOLD"
	StatusBuyZone  = "BUY_ZONE"
	StatusSellZone = "SELL_ZONE"
)

// Stock is a tracked instrument: identity, classification, user-configured
// price zones, and the latest quote from the price provider.
type Stock struct {
	ID           int64      `json:"id"`
	Symbol       string     `json:"symbol"`
	Name         string     `json:"name"`
	Sector       string     `json:"sector,omitempty"`
	MarketCap    string     `json:"market_cap,omitempty"` // Large Cap, Mid Cap, Small Cap, Micro Cap
	Status       string     `json:"status"`
	BuyZone      string     `json:"buy_zone,omitempty"`     // e.g. "250-300" or "250"
	SellZone     string     `json:"sell_zone,omitempty"`
	AverageZone  string     `json:"average_zone,omitempty"`
	CurrentPrice *float64   `json:"current_price,omitempty"`
	DayChangePct *float64   `json:"day_change_pct,omitempty"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}
