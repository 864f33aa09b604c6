// Package cashflow tracks income and expenses and derives monthly savings
// behavior from them.
package cashflow

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/pkg/formulas"
)

// topCategoryCount limits the category breakdown to the biggest spenders.
const topCategoryCount = 5

// Service computes cash flow analyses.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new cash flow service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "cashflow").Logger(),
	}
}

// GetAnalysis builds the monthly cash flow report from all recorded entries.
func (s *Service) GetAnalysis() (*Analysis, error) {
	income, err := s.repo.GetIncome()
	if err != nil {
		return nil, fmt.Errorf("failed to load income: %w", err)
	}
	expenses, err := s.repo.GetExpenses()
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	return buildAnalysis(income, expenses), nil
}

func buildAnalysis(income, expenses []Entry) *Analysis {
	monthlyIncome := make(map[string]float64)
	monthlyExpense := make(map[string]float64)
	categoryTotals := make(map[string]float64)

	for _, entry := range income {
		monthlyIncome[entry.Date.Format("2006-01")] += entry.Amount
	}
	var totalSpend float64
	for _, entry := range expenses {
		monthlyExpense[entry.Date.Format("2006-01")] += entry.Amount
		categoryTotals[entry.Label] += entry.Amount
		totalSpend += entry.Amount
	}

	months := make(map[string]struct{})
	for m := range monthlyIncome {
		months[m] = struct{}{}
	}
	for m := range monthlyExpense {
		months[m] = struct{}{}
	}
	ordered := make([]string, 0, len(months))
	for m := range months {
		ordered = append(ordered, m)
	}
	sort.Strings(ordered)

	analysis := &Analysis{Months: make([]MonthlyFlow, 0, len(ordered))}
	incomes := make([]float64, 0, len(ordered))
	spends := make([]float64, 0, len(ordered))
	rates := make([]float64, 0, len(ordered))

	for _, month := range ordered {
		in := monthlyIncome[month]
		out := monthlyExpense[month]
		flow := MonthlyFlow{
			Month:         month,
			TotalIncome:   formulas.Round(in, 2),
			TotalExpenses: formulas.Round(out, 2),
			NetSavings:    formulas.Round(in-out, 2),
		}
		if in > 0 {
			flow.SavingsRatePct = formulas.Round((in-out)/in*100, 2)
			rates = append(rates, flow.SavingsRatePct)
		}
		incomes = append(incomes, in)
		spends = append(spends, out)
		analysis.Months = append(analysis.Months, flow)
	}

	analysis.AvgMonthlyIncome = formulas.Round(formulas.Mean(incomes), 2)
	analysis.AvgMonthlyExpense = formulas.Round(formulas.Mean(spends), 2)
	analysis.AvgSavingsRatePct = formulas.Round(formulas.Mean(rates), 2)

	for category, total := range categoryTotals {
		pct := 0.0
		if totalSpend > 0 {
			pct = formulas.Round(total/totalSpend*100, 2)
		}
		analysis.TopCategories = append(analysis.TopCategories, CategoryTotal{
			Category: category,
			Total:    formulas.Round(total, 2),
			Percent:  pct,
		})
	}
	sort.Slice(analysis.TopCategories, func(i, j int) bool {
		return analysis.TopCategories[i].Total > analysis.TopCategories[j].Total
	})
	if len(analysis.TopCategories) > topCategoryCount {
		analysis.TopCategories = analysis.TopCategories[:topCategoryCount]
	}

	analysis.NextMonth = predict(income, expenses, analysis)

	return analysis
}

// predict estimates next month from recurring entries where they exist,
// falling back to the historical monthly average.
func predict(income, expenses []Entry, analysis *Analysis) Prediction {
	recurringMonthly := func(entries []Entry) float64 {
		// recurring entries repeat monthly; count each distinct label once
		// at its most recent amount
		latest := make(map[string]Entry)
		for _, entry := range entries {
			if !entry.IsRecurring {
				continue
			}
			if prev, ok := latest[entry.Label]; !ok || entry.Date.After(prev.Date) {
				latest[entry.Label] = entry
			}
		}
		var total float64
		for _, entry := range latest {
			total += entry.Amount
		}
		return total
	}

	expectedIncome := recurringMonthly(income)
	if expectedIncome == 0 {
		expectedIncome = analysis.AvgMonthlyIncome
	}
	expectedExpenses := recurringMonthly(expenses)
	if expectedExpenses == 0 {
		expectedExpenses = analysis.AvgMonthlyExpense
	}

	return Prediction{
		ExpectedIncome:   formulas.Round(expectedIncome, 2),
		ExpectedExpenses: formulas.Round(expectedExpenses, 2),
		ExpectedSavings:  formulas.Round(expectedIncome-expectedExpenses, 2),
	}
}
