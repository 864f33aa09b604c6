package health

// SectorWeight is one sector's share of the stock portfolio.
type SectorWeight struct {
	Sector  string  `json:"sector"`
	Percent float64 `json:"percent"`
}

// CapWeight is one market-cap bucket's share of the stock portfolio.
type CapWeight struct {
	MarketCap string  `json:"market_cap"`
	Percent   float64 `json:"percent"`
}

// AllocationViolation flags a holding above its position size limit for its
// market-cap bucket.
type AllocationViolation struct {
	Symbol    string  `json:"symbol"`
	MarketCap string  `json:"market_cap"`
	Percent   float64 `json:"percent"`
	LimitPct  float64 `json:"limit_pct"`
}

// Report is the full portfolio health check.
type Report struct {
	HoldingCount         int                   `json:"holding_count"`
	Top3ConcentrationPct float64               `json:"top3_concentration_pct"`
	HHI                  float64               `json:"hhi"`
	Sectors              []SectorWeight        `json:"sectors"`
	MarketCaps           []CapWeight           `json:"market_caps"`
	Violations           []AllocationViolation `json:"violations,omitempty"`
	ConcentrationScore   float64               `json:"concentration_score"`
	DiversificationScore float64               `json:"diversification_score"`
	AllocationScore      float64               `json:"allocation_score"`
	OverallScore         float64               `json:"overall_score"`
}
