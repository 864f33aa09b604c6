// Package domain holds the shared data model for the investment tracker.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// TxnSide represents the transaction direction (BUY or SELL)
type TxnSide string

const (
	TxnSideBuy  TxnSide = "BUY"
	TxnSideSell TxnSide = "SELL"
)

// IsValid checks if the transaction side is valid
func (s TxnSide) IsValid() bool {
	return s == TxnSideBuy || s == TxnSideSell
}

// TxnSideFromString creates a TxnSide from a string (case-insensitive)
func TxnSideFromString(value string) (TxnSide, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "BUY":
		return TxnSideBuy, nil
	case "SELL":
		return TxnSideSell, nil
	default:
		return "", fmt.Errorf("invalid transaction side: %q", value)
	}
}

// Transaction is a single recorded buy or sell of an instrument. It is an
// append-only fact: holdings and returns are always recomputed from the full
// transaction history, never stored.
//
// For stocks Amount is Quantity * Price. For unit-based instruments (mutual
// funds) Amount is supplied by the caller and is authoritative for cost-basis
// math; Quantity and Price (the NAV) are informational.
type Transaction struct {
	ID       int64      `json:"id"`
	Symbol   string     `json:"symbol"`
	Name     string     `json:"name"`
	Side     TxnSide    `json:"side"`
	Quantity float64    `json:"quantity"`
	Price    float64    `json:"price"`
	Amount   float64    `json:"amount"`
	Date     time.Time  `json:"date"`
	Reason   string     `json:"reason,omitempty"`
	Notes    string     `json:"notes,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Validate validates transaction data and normalizes the symbol.
// Economically odd but well-typed data (oversells) is deliberately NOT
// caught here; the ledger treats it as a data-quality signal.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Symbol) == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if !t.Side.IsValid() {
		return fmt.Errorf("invalid transaction side: %q", t.Side)
	}
	if t.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}
	if t.Price <= 0 {
		return fmt.Errorf("price must be positive")
	}

	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	if t.Amount == 0 {
		t.Amount = t.Quantity * t.Price
	}

	return nil
}

// Quote is a spot price for one instrument from the quote provider.
type Quote struct {
	Symbol       string   `json:"symbol"`
	Price        float64  `json:"price"`
	DayChangePct *float64 `json:"day_change_pct,omitempty"`
}

// PriceProvider supplies current market prices. Implemented by the quotes
// HTTP client in production and by stubs in tests; the calculation core never
// fetches prices itself.
type PriceProvider interface {
	GetQuote(symbol string) (*Quote, error)
}

// AssetStatus marks balance-style assets as active or closed.
const (
	AssetStatusActive = "active"
	AssetStatusClosed = "closed"
)

// FixedDeposit is a fixed-tenor deposit with a known principal and maturity.
type FixedDeposit struct {
	ID             int64      `json:"id"`
	BankName       string     `json:"bank_name"`
	Principal      float64    `json:"principal_amount"`
	InterestRate   float64    `json:"interest_rate"`
	MaturityAmount *float64   `json:"maturity_amount,omitempty"`
	StartDate      time.Time  `json:"start_date"`
	MaturityDate   *time.Time `json:"maturity_date,omitempty"`
	Status         string     `json:"status"`
}

// EPFAccount is an employee provident fund account balance.
type EPFAccount struct {
	ID             int64      `json:"id"`
	EmployerName   string     `json:"employer_name"`
	OpeningBalance float64    `json:"opening_balance"`
	OpeningDate    *time.Time `json:"opening_date,omitempty"`
	CurrentBalance float64    `json:"current_balance"`
}

// NPSAccount is a national pension scheme account.
type NPSAccount struct {
	ID             int64      `json:"id"`
	AccountNumber  string     `json:"account_number"`
	OpeningBalance float64    `json:"opening_balance"`
	OpeningDate    *time.Time `json:"opening_date,omitempty"`
	CurrentValue   float64    `json:"current_value"`
}

// SavingsAccount is a bank savings balance.
type SavingsAccount struct {
	ID             int64   `json:"id"`
	BankName       string  `json:"bank_name"`
	CurrentBalance float64 `json:"current_balance"`
}

// LendingRecord is money lent out, tracked by outstanding amount.
type LendingRecord struct {
	ID          int64   `json:"id"`
	Borrower    string  `json:"borrower"`
	Principal   float64 `json:"principal_amount"`
	Outstanding float64 `json:"outstanding_amount"`
	Status      string  `json:"status"`
}

// OtherInvestment is any asset tracked by a simple purchase/current value
// pair (gold, real estate, collectibles).
type OtherInvestment struct {
	ID            int64    `json:"id"`
	Description   string   `json:"description"`
	PurchaseValue float64  `json:"purchase_value"`
	CurrentValue  *float64 `json:"current_value,omitempty"`
}

// Value returns the current value of an other-investment record, falling
// back to purchase value when no current valuation has been recorded.
func (o OtherInvestment) Value() float64 {
	if o.CurrentValue != nil {
		return *o.CurrentValue
	}
	return o.PurchaseValue
}
