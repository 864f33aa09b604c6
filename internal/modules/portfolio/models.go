package portfolio

// HoldingView is one open position enriched with market data.
type HoldingView struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	Quantity          float64  `json:"quantity"`
	AverageCost       float64  `json:"average_cost"`
	InvestedAmount    float64  `json:"invested_amount"`
	CurrentPrice      *float64 `json:"current_price,omitempty"`
	MarketValue       *float64 `json:"market_value,omitempty"`
	UnrealizedPnL     *float64 `json:"unrealized_pnl,omitempty"`
	UnrealizedPnLPct  *float64 `json:"unrealized_pnl_pct,omitempty"`
	DayChangePct      *float64 `json:"day_change_pct,omitempty"`
	RealizedPnL       float64  `json:"realized_pnl"`
	HoldingPeriodDays float64  `json:"holding_period_days"`
	PortfolioPct      float64  `json:"portfolio_pct"`
}

// Summary is the whole-portfolio roll-up.
type Summary struct {
	Holdings           []HoldingView `json:"holdings"`
	TotalInvested      float64       `json:"total_invested"`
	TotalMarketValue   float64       `json:"total_market_value"`
	TotalUnrealizedPnL float64       `json:"total_unrealized_pnl"`
	TotalRealizedPnL   float64       `json:"total_realized_pnl"`
	DayChangePct       *float64      `json:"day_change_pct,omitempty"`
	XIRRPct            *float64      `json:"xirr_pct,omitempty"`
	OversoldSymbols    []string      `json:"oversold_symbols,omitempty"`
}
