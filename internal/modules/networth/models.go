package networth

// Asset type labels used in breakdowns.
const (
	TypeStocks        = "stocks"
	TypeMutualFunds   = "mutual_funds"
	TypeFixedDeposits = "fixed_deposits"
	TypeEPF           = "epf"
	TypeNPS           = "nps"
	TypeSavings       = "savings"
	TypeLending       = "lending"
	TypeOther         = "other"
)

// TypeValue is one asset type's contribution to net worth.
type TypeValue struct {
	Type    string  `json:"type"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Allocation splits net worth across broad asset classes. Mutual funds and
// NPS are split between equity and debt by configured ratios since exact
// scheme compositions are not tracked.
type Allocation struct {
	EquityPct      float64 `json:"equity_pct"`
	DebtPct        float64 `json:"debt_pct"`
	CashPct        float64 `json:"cash_pct"`
	AlternativePct float64 `json:"alternative_pct"`
}

// Liquidity splits net worth by how quickly it can be converted to cash.
type Liquidity struct {
	LiquidPct   float64 `json:"liquid_pct"`
	IlliquidPct float64 `json:"illiquid_pct"`
}

// Summary is the full multi-asset net worth picture.
type Summary struct {
	TotalNetWorth      float64     `json:"total_net_worth"`
	Breakdown          []TypeValue `json:"breakdown"`
	Allocation         Allocation  `json:"allocation"`
	Liquidity          Liquidity   `json:"liquidity"`
	DiversificationHHI float64     `json:"diversification_hhi"`
	UnifiedXIRRPct     *float64    `json:"unified_xirr_pct,omitempty"`
	StocksXIRRPct      *float64    `json:"stocks_xirr_pct,omitempty"`
	MutualFundsXIRRPct *float64    `json:"mutual_funds_xirr_pct,omitempty"`
}
