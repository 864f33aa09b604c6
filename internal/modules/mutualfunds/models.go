package mutualfunds

import "time"

// MFTransaction is one mutual fund buy or sell. Amount is the money that
// actually moved and is authoritative for cost basis; Units and NAV are the
// statement figures.
type MFTransaction struct {
	ID         int64      `json:"id"`
	SchemeCode string     `json:"scheme_code"`
	SchemeName string     `json:"scheme_name"`
	Side       string     `json:"side"`
	Units      float64    `json:"units"`
	NAV        float64    `json:"nav"`
	Amount     float64    `json:"amount"`
	Date       time.Time  `json:"date"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// SchemeHolding is the replayed position in one scheme. LatestNAV is the NAV
// of the most recent transaction, used to value the position until a NAV feed
// exists.
type SchemeHolding struct {
	SchemeCode        string  `json:"scheme_code"`
	SchemeName        string  `json:"scheme_name"`
	Units             float64 `json:"units"`
	InvestedAmount    float64 `json:"invested_amount"`
	AverageNAV        float64 `json:"average_nav"`
	LatestNAV         float64 `json:"latest_nav"`
	CurrentValue      float64 `json:"current_value"`
	UnrealizedPnL     float64 `json:"unrealized_pnl"`
	RealizedPnL       float64 `json:"realized_pnl"`
	HoldingPeriodDays float64 `json:"holding_period_days"`
}

// Summary is the whole mutual fund portfolio roll-up.
type Summary struct {
	Holdings         []SchemeHolding `json:"holdings"`
	TotalInvested    float64         `json:"total_invested"`
	TotalValue       float64         `json:"total_value"`
	TotalRealizedPnL float64         `json:"total_realized_pnl"`
	XIRRPct          *float64        `json:"xirr_pct,omitempty"`
}
