package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(label string, amount float64, on string, recurring bool) Entry {
	d, _ := time.Parse("2006-01-02", on)
	return Entry{Label: label, Amount: amount, Date: d, IsRecurring: recurring}
}

func TestBuildAnalysisMonthlyFlows(t *testing.T) {
	income := []Entry{
		entry("Salary", 100000, "2024-01-31", true),
		entry("Salary", 100000, "2024-02-29", true),
	}
	expenses := []Entry{
		entry("Rent", 30000, "2024-01-05", true),
		entry("Groceries", 10000, "2024-01-15", false),
		entry("Rent", 30000, "2024-02-05", true),
	}

	analysis := buildAnalysis(income, expenses)
	require.Len(t, analysis.Months, 2)

	jan := analysis.Months[0]
	assert.Equal(t, "2024-01", jan.Month)
	assert.Equal(t, 100000.0, jan.TotalIncome)
	assert.Equal(t, 40000.0, jan.TotalExpenses)
	assert.Equal(t, 60000.0, jan.NetSavings)
	assert.Equal(t, 60.0, jan.SavingsRatePct)

	feb := analysis.Months[1]
	assert.Equal(t, 70000.0, feb.NetSavings)
	assert.Equal(t, 70.0, feb.SavingsRatePct)

	assert.Equal(t, 100000.0, analysis.AvgMonthlyIncome)
	assert.Equal(t, 35000.0, analysis.AvgMonthlyExpense)
	assert.Equal(t, 65.0, analysis.AvgSavingsRatePct)
}

func TestBuildAnalysisTopCategories(t *testing.T) {
	expenses := []Entry{
		entry("Rent", 30000, "2024-01-05", true),
		entry("Groceries", 10000, "2024-01-15", false),
		entry("Dining", 5000, "2024-01-20", false),
		entry("Travel", 3000, "2024-01-21", false),
		entry("Utilities", 2000, "2024-01-22", false),
		entry("Subscriptions", 500, "2024-01-23", false),
	}

	analysis := buildAnalysis(nil, expenses)
	require.Len(t, analysis.TopCategories, topCategoryCount)
	assert.Equal(t, "Rent", analysis.TopCategories[0].Category)
	assert.InDelta(t, 59.41, analysis.TopCategories[0].Percent, 0.01)
	// smallest category dropped
	for _, cat := range analysis.TopCategories {
		assert.NotEqual(t, "Subscriptions", cat.Category)
	}
}

func TestBuildAnalysisPredictionFromRecurring(t *testing.T) {
	income := []Entry{
		entry("Salary", 90000, "2024-01-31", true),
		entry("Salary", 100000, "2024-02-29", true), // latest amount wins
		entry("Bonus", 50000, "2024-02-15", false),
	}
	expenses := []Entry{
		entry("Rent", 30000, "2024-02-05", true),
		entry("Groceries", 10000, "2024-02-15", false),
	}

	analysis := buildAnalysis(income, expenses)
	assert.Equal(t, 100000.0, analysis.NextMonth.ExpectedIncome)
	assert.Equal(t, 30000.0, analysis.NextMonth.ExpectedExpenses)
	assert.Equal(t, 70000.0, analysis.NextMonth.ExpectedSavings)
}

func TestBuildAnalysisPredictionFallsBackToAverage(t *testing.T) {
	income := []Entry{
		entry("Freelance", 40000, "2024-01-15", false),
		entry("Freelance", 60000, "2024-02-15", false),
	}

	analysis := buildAnalysis(income, nil)
	assert.Equal(t, 50000.0, analysis.NextMonth.ExpectedIncome)
	assert.Equal(t, 0.0, analysis.NextMonth.ExpectedExpenses)
}

func TestBuildAnalysisEmpty(t *testing.T) {
	analysis := buildAnalysis(nil, nil)
	assert.Empty(t, analysis.Months)
	assert.Empty(t, analysis.TopCategories)
	assert.Equal(t, 0.0, analysis.AvgMonthlyIncome)
}
