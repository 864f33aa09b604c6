package cashflow

import "time"

// Entry is one income or expense record. Recurring entries feed the
// next-month prediction.
type Entry struct {
	ID          int64     `json:"id"`
	Label       string    `json:"label"` // income source or expense category
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	IsRecurring bool      `json:"is_recurring"`
}

// MonthlyFlow is the income/expense/savings picture for one calendar month.
type MonthlyFlow struct {
	Month          string  `json:"month"` // YYYY-MM
	TotalIncome    float64 `json:"total_income"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetSavings     float64 `json:"net_savings"`
	SavingsRatePct float64 `json:"savings_rate_pct"`
}

// CategoryTotal is the spend in one expense category over the analyzed window.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
}

// Prediction estimates next month's flows from recurring entries and the
// average of recent months.
type Prediction struct {
	ExpectedIncome   float64 `json:"expected_income"`
	ExpectedExpenses float64 `json:"expected_expenses"`
	ExpectedSavings  float64 `json:"expected_savings"`
}

// Analysis is the full cash flow report.
type Analysis struct {
	Months            []MonthlyFlow   `json:"months"`
	AvgMonthlyIncome  float64         `json:"avg_monthly_income"`
	AvgMonthlyExpense float64         `json:"avg_monthly_expense"`
	AvgSavingsRatePct float64         `json:"avg_savings_rate_pct"`
	TopCategories     []CategoryTotal `json:"top_categories"`
	NextMonth         Prediction      `json:"next_month"`
}
