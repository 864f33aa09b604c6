// Package health scores the stock portfolio on concentration,
// diversification and position sizing discipline.
package health

import (
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/modules/portfolio"
	"github.com/rpatwa/nivesh/internal/modules/universe"
	"github.com/rpatwa/nivesh/pkg/formulas"
)

// Position size limits by market-cap bucket, as percent of the stock
// portfolio. A small tolerance band above the limit still counts as fine.
const (
	largeCapLimitPct = 5.0
	midCapLimitPct   = 3.0
	smallCapLimitPct = 2.0
	limitBandPct     = 0.5

	top3HealthyPct = 40.0

	// Counts at which each diversification component maxes out.
	fullDiversityStocks  = 15.0
	fullDiversitySectors = 8.0
	fullDiversityCaps    = 4.0

	diversificationWeight = 0.40
	concentrationWeight   = 0.30
	allocationWeight      = 0.30
)

// PortfolioSource supplies the stock portfolio roll-up.
type PortfolioSource interface {
	GetSummary() (*portfolio.Summary, error)
}

// StockLookup resolves a holding symbol to its watchlist entry for sector
// and market-cap classification.
type StockLookup interface {
	FindBySymbol(symbol string) (*universe.Stock, error)
}

// Service computes portfolio health reports.
type Service struct {
	portfolio PortfolioSource
	stocks    StockLookup
	log       zerolog.Logger
}

// NewService creates a new health service
func NewService(portfolioSrc PortfolioSource, stocks StockLookup, log zerolog.Logger) *Service {
	return &Service{
		portfolio: portfolioSrc,
		stocks:    stocks,
		log:       log.With().Str("service", "health").Logger(),
	}
}

// GetReport scores the current stock portfolio.
func (s *Service) GetReport() (*Report, error) {
	summary, err := s.portfolio.GetSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}
	return s.buildReport(summary), nil
}

func (s *Service) buildReport(summary *portfolio.Summary) *Report {
	report := &Report{HoldingCount: len(summary.Holdings)}
	if len(summary.Holdings) == 0 {
		return report
	}

	weights := make([]float64, 0, len(summary.Holdings))
	sectorPct := make(map[string]float64)
	capPct := make(map[string]float64)

	pcts := make([]float64, 0, len(summary.Holdings))
	for _, h := range summary.Holdings {
		pct := h.PortfolioPct
		pcts = append(pcts, pct)
		weights = append(weights, pct)

		sector := "Unknown"
		marketCap := "Unknown"
		if stock, err := s.stocks.FindBySymbol(h.Symbol); err == nil && stock != nil {
			if stock.Sector != "" {
				sector = stock.Sector
			}
			if stock.MarketCap != "" {
				marketCap = stock.MarketCap
			}
		}
		sectorPct[sector] += pct
		capPct[marketCap] += pct

		if limit, ok := capLimit(marketCap); ok && pct > limit+limitBandPct {
			report.Violations = append(report.Violations, AllocationViolation{
				Symbol:    h.Symbol,
				MarketCap: marketCap,
				Percent:   pct,
				LimitPct:  limit,
			})
		}
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(pcts)))
	for i := 0; i < len(pcts) && i < 3; i++ {
		report.Top3ConcentrationPct += pcts[i]
	}
	report.Top3ConcentrationPct = formulas.Round(report.Top3ConcentrationPct, 2)
	report.HHI = formulas.Round(formulas.Herfindahl(weights), 4)

	report.Sectors = sortedWeights(sectorPct, func(label string, pct float64) SectorWeight {
		return SectorWeight{Sector: label, Percent: pct}
	})
	report.MarketCaps = sortedWeights(capPct, func(label string, pct float64) CapWeight {
		return CapWeight{MarketCap: label, Percent: pct}
	})

	numSectors := len(sectorPct)
	if _, ok := sectorPct["Unknown"]; ok {
		numSectors--
	}
	numCaps := len(capPct)
	if _, ok := capPct["Unknown"]; ok {
		numCaps--
	}

	report.ConcentrationScore = concentrationScore(report.Top3ConcentrationPct)
	report.DiversificationScore = diversificationScore(len(summary.Holdings), numSectors, numCaps, report.HHI)
	report.AllocationScore = allocationScore(len(report.Violations))
	report.OverallScore = formulas.Round(
		report.DiversificationScore*diversificationWeight+
			report.ConcentrationScore*concentrationWeight+
			report.AllocationScore*allocationWeight, 2)

	return report
}

func capLimit(marketCap string) (float64, bool) {
	switch marketCap {
	case "Large Cap":
		return largeCapLimitPct, true
	case "Mid Cap":
		return midCapLimitPct, true
	case "Small Cap", "Micro Cap":
		return smallCapLimitPct, true
	default:
		return 0, false
	}
}

// concentrationScore is 100 while the top three positions stay under the
// healthy ceiling, then decays linearly to zero as they approach the whole
// portfolio.
func concentrationScore(top3Pct float64) float64 {
	if top3Pct <= top3HealthyPct {
		return 100
	}
	score := 100 - (top3Pct-top3HealthyPct)/(100-top3HealthyPct)*100
	if score < 0 {
		score = 0
	}
	return formulas.Round(score, 2)
}

// diversificationScore blends breadth of holdings, sectors and cap buckets
// with an inverted Herfindahl index. Unknown sector and cap labels do not
// count toward breadth.
func diversificationScore(numStocks, numSectors, numCaps int, hhi float64) float64 {
	stockScore := math.Min(float64(numStocks)/fullDiversityStocks*100, 100)
	sectorScore := math.Min(float64(numSectors)/fullDiversitySectors*100, 100)
	capScore := math.Min(float64(numCaps)/fullDiversityCaps*100, 100)
	hhiScore := (1 - hhi) * 100

	return formulas.Round(stockScore*0.3+sectorScore*0.3+capScore*0.2+hhiScore*0.2, 2)
}

// allocationScore deducts ten points per oversized position.
func allocationScore(violations int) float64 {
	score := 100.0 - float64(violations)*10
	if score < 0 {
		score = 0
	}
	return score
}

func sortedWeights[T any](weights map[string]float64, build func(string, float64) T) []T {
	labels := make([]string, 0, len(weights))
	for label := range weights {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if weights[labels[i]] != weights[labels[j]] {
			return weights[labels[i]] > weights[labels[j]]
		}
		return labels[i] < labels[j]
	})

	out := make([]T, 0, len(labels))
	for _, label := range labels {
		out = append(out, build(label, formulas.Round(weights[label], 2)))
	}
	return out
}
