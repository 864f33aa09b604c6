// Package rebalancing turns health violations and price zones into concrete
// buy and trim suggestions.
package rebalancing

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/modules/health"
	"github.com/rpatwa/nivesh/internal/modules/universe"
	"github.com/rpatwa/nivesh/internal/modules/zones"
	"github.com/rpatwa/nivesh/pkg/formulas"
)

// Priority labels for suggestions.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// ReduceAction suggests trimming an oversized position back to its limit.
type ReduceAction struct {
	Symbol     string  `json:"symbol"`
	CurrentPct float64 `json:"current_pct"`
	TargetPct  float64 `json:"target_pct"`
	Reason     string  `json:"reason"`
}

// AddAction suggests a buy candidate whose price sits in or near its
// configured buy zone.
type AddAction struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice *float64 `json:"current_price,omitempty"`
	BuyZone      string   `json:"buy_zone"`
	Priority     string   `json:"priority"`
}

// Plan is the full set of rebalancing suggestions.
type Plan struct {
	ToReduce []ReduceAction `json:"to_reduce"`
	ToAdd    []AddAction    `json:"to_add"`
}

// HealthSource supplies the portfolio health report.
type HealthSource interface {
	GetReport() (*health.Report, error)
}

// StockSource supplies the full watchlist.
type StockSource interface {
	GetAll() ([]universe.Stock, error)
}

// Service computes rebalancing plans.
type Service struct {
	health HealthSource
	stocks StockSource
	log    zerolog.Logger
}

// NewService creates a new rebalancing service
func NewService(healthSrc HealthSource, stocks StockSource, log zerolog.Logger) *Service {
	return &Service{
		health: healthSrc,
		stocks: stocks,
		log:    log.With().Str("service", "rebalancing").Logger(),
	}
}

// GetPlan builds the current rebalancing plan.
func (s *Service) GetPlan() (*Plan, error) {
	report, err := s.health.GetReport()
	if err != nil {
		return nil, fmt.Errorf("failed to load health report: %w", err)
	}
	stocks, err := s.stocks.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	return buildPlan(report, stocks), nil
}

func buildPlan(report *health.Report, stocks []universe.Stock) *Plan {
	plan := &Plan{
		ToReduce: make([]ReduceAction, 0, len(report.Violations)),
		ToAdd:    make([]AddAction, 0),
	}

	for _, v := range report.Violations {
		plan.ToReduce = append(plan.ToReduce, ReduceAction{
			Symbol:     v.Symbol,
			CurrentPct: v.Percent,
			TargetPct:  v.LimitPct,
			Reason:     fmt.Sprintf("position exceeds %s limit of %.1f%%", v.MarketCap, v.LimitPct),
		})
	}
	sort.Slice(plan.ToReduce, func(i, j int) bool {
		return plan.ToReduce[i].CurrentPct-plan.ToReduce[i].TargetPct >
			plan.ToReduce[j].CurrentPct-plan.ToReduce[j].TargetPct
	})

	for _, stock := range stocks {
		if stock.BuyZone == "" || stock.CurrentPrice == nil {
			continue
		}
		switch zones.Classify(*stock.CurrentPrice, stock.BuyZone) {
		case zones.PositionInZone:
			plan.ToAdd = append(plan.ToAdd, addAction(stock, PriorityHigh))
		case zones.PositionNear:
			plan.ToAdd = append(plan.ToAdd, addAction(stock, PriorityMedium))
		}
	}
	// in-zone candidates first
	sort.SliceStable(plan.ToAdd, func(i, j int) bool {
		return plan.ToAdd[i].Priority == PriorityHigh && plan.ToAdd[j].Priority != PriorityHigh
	})

	return plan
}

func addAction(stock universe.Stock, priority string) AddAction {
	action := AddAction{
		Symbol:   stock.Symbol,
		Name:     stock.Name,
		BuyZone:  stock.BuyZone,
		Priority: priority,
	}
	if stock.CurrentPrice != nil {
		price := formulas.Round(*stock.CurrentPrice, 2)
		action.CurrentPrice = &price
	}
	return action
}
