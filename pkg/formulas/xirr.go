package formulas

import (
	"math"
	"sort"
	"time"
)

// CashFlow is a single dated cash movement for XIRR purposes.
// Negative amounts are money leaving the investor (buys, deposits opened),
// positive amounts are money coming back (sells, maturities, current value).
type CashFlow struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

const (
	xirrMaxIterations = 100
	xirrTolerance     = 1e-6
	xirrMinRate       = -0.99
)

// XIRR computes the Extended Internal Rate of Return for an irregular
// cash-flow series using Newton-Raphson iteration on the NPV function
//
//	NPV(r) = sum of amount_i / (1 + r)^(days_i / 365)
//
// where days_i is measured from the earliest flow date.
//
// Returns the annualized rate as a decimal (0.10 for 10%), or nil when no
// rate can be computed: fewer than two flows, all flows of one sign, a zero
// derivative, or no convergence within the iteration budget. A nil result is
// a normal outcome (e.g. a position with buys only and no current value), not
// an error.
func XIRR(flows []CashFlow, guess float64) *float64 {
	if len(flows) < 2 {
		return nil
	}

	sorted := make([]CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	// XIRR is only defined when money both leaves and returns.
	hasNeg, hasPos := false, false
	for _, f := range sorted {
		if f.Amount < 0 {
			hasNeg = true
		}
		if f.Amount > 0 {
			hasPos = true
		}
	}
	if !hasNeg || !hasPos {
		return nil
	}

	// Normalize dates to year fractions from the earliest flow.
	start := truncateToDay(sorted[0].Date)
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		days := truncateToDay(f.Date).Sub(start).Hours() / 24
		years[i] = days / 365.0
	}

	rate := guess

	for iter := 0; iter < xirrMaxIterations; iter++ {
		npv := 0.0
		dnpv := 0.0

		for i, f := range sorted {
			y := years[i]
			discount := math.Pow(1+rate, y)
			npv += f.Amount / discount
			dnpv += -y * f.Amount / math.Pow(1+rate, y+1)
		}

		if math.Abs(npv) < xirrTolerance {
			result := rate
			return &result
		}

		if dnpv == 0 {
			return nil
		}

		newRate := rate - npv/dnpv
		if newRate <= xirrMinRate {
			newRate = xirrMinRate
		}
		rate = newRate
	}

	// Iteration budget exhausted without convergence. Better to report
	// nothing than a rate that may be arbitrarily wrong.
	return nil
}

// XIRRDefault runs XIRR with the conventional 10% starting guess.
func XIRRDefault(flows []CashFlow) *float64 {
	return XIRR(flows, 0.10)
}

// XIRRPercent returns the rate as a rounded percentage (15.5 for 15.5%),
// or nil when the underlying solve fails.
func XIRRPercent(flows []CashFlow) *float64 {
	rate := XIRRDefault(flows)
	if rate == nil {
		return nil
	}
	pct := Round(*rate*100, 2)
	return &pct
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
