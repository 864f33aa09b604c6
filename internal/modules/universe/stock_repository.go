package universe

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// StockRepository handles tracked-stock database operations
type StockRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *sql.DB, log zerolog.Logger) *StockRepository {
	return &StockRepository{
		db:  db,
		log: log.With().Str("repo", "stocks").Logger(),
	}
}

const stockColumns = `id, symbol, name, sector, market_cap, status,
	buy_zone, sell_zone, average_zone, current_price, day_change_pct, last_updated`

// GetAll returns all tracked stocks ordered by symbol
func (r *StockRepository) GetAll() ([]Stock, error) {
	rows, err := r.db.Query(
		"SELECT " + stockColumns + " FROM stocks ORDER BY symbol ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	var stocks []Stock
	for rows.Next() {
		stock, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}

	return stocks, nil
}

// GetByID returns a single stock, or nil when not found
func (r *StockRepository) GetByID(id int64) (*Stock, error) {
	row := r.db.QueryRow(
		"SELECT "+stockColumns+" FROM stocks WHERE id = ?", id)

	stock, err := scanStock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return &stock, nil
}

// FindBySymbol finds a stock with flexible matching: exact first, then by
// normalized symbol so "ABC" matches an "ABC.NS" row and vice versa.
func (r *StockRepository) FindBySymbol(symbol string) (*Stock, error) {
	row := r.db.QueryRow(
		"SELECT "+stockColumns+" FROM stocks WHERE symbol = ?",
		strings.ToUpper(strings.TrimSpace(symbol)))

	stock, err := scanStock(row)
	if err == nil {
		return &stock, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to find stock by symbol: %w", err)
	}

	// Fall back to suffix-insensitive matching over the full universe.
	all, err := r.GetAll()
	if err != nil {
		return nil, err
	}

	normalized := Normalize(symbol)
	for i := range all {
		if Normalize(all[i].Symbol) == normalized {
			return &all[i], nil
		}
	}

	return nil, nil
}

// Create inserts a new tracked stock
func (r *StockRepository) Create(stock *Stock) error {
	result, err := r.db.Exec(`
		INSERT INTO stocks (symbol, name, sector, market_cap, status,
			buy_zone, sell_zone, average_zone, current_price, day_change_pct, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		strings.ToUpper(strings.TrimSpace(stock.Symbol)),
		stock.Name,
		nullString(stock.Sector),
		nullString(stock.MarketCap),
		stock.Status,
		nullString(stock.BuyZone),
		nullString(stock.SellZone),
		nullString(stock.AverageZone),
		nullFloat64Ptr(stock.CurrentPrice),
		nullFloat64Ptr(stock.DayChangePct),
		nullTimePtr(stock.LastUpdated),
	)
	if err != nil {
		return fmt.Errorf("failed to create stock: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get stock id: %w", err)
	}
	stock.ID = id

	r.log.Info().Str("symbol", stock.Symbol).Msg("Stock created")
	return nil
}

// Update rewrites a tracked stock's editable fields
func (r *StockRepository) Update(stock *Stock) error {
	_, err := r.db.Exec(`
		UPDATE stocks
		SET symbol = ?, name = ?, sector = ?, market_cap = ?, status = ?,
			buy_zone = ?, sell_zone = ?, average_zone = ?
		WHERE id = ?`,
		strings.ToUpper(strings.TrimSpace(stock.Symbol)),
		stock.Name,
		nullString(stock.Sector),
		nullString(stock.MarketCap),
		stock.Status,
		nullString(stock.BuyZone),
		nullString(stock.SellZone),
		nullString(stock.AverageZone),
		stock.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}

// UpdatePrice stores a fresh quote for a stock
func (r *StockRepository) UpdatePrice(id int64, price float64, dayChangePct *float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Exec(`
		UPDATE stocks
		SET current_price = ?, day_change_pct = ?, last_updated = ?
		WHERE id = ?`,
		price, nullFloat64Ptr(dayChangePct), now, id)
	if err != nil {
		return fmt.Errorf("failed to update stock price: %w", err)
	}
	return nil
}

// UpdateStatus sets a stock's watchlist status
func (r *StockRepository) UpdateStatus(id int64, status string) error {
	_, err := r.db.Exec("UPDATE stocks SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update stock status: %w", err)
	}
	return nil
}

// Delete removes a tracked stock
func (r *StockRepository) Delete(id int64) error {
	_, err := r.db.Exec("DELETE FROM stocks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStock(row scanner) (Stock, error) {
	var stock Stock
	var sector, marketCap, buyZone, sellZone, averageZone sql.NullString
	var currentPrice, dayChangePct sql.NullFloat64
	var lastUpdated sql.NullString

	err := row.Scan(
		&stock.ID,
		&stock.Symbol,
		&stock.Name,
		&sector,
		&marketCap,
		&stock.Status,
		&buyZone,
		&sellZone,
		&averageZone,
		&currentPrice,
		&dayChangePct,
		&lastUpdated,
	)
	if err != nil {
		return stock, err
	}

	stock.Sector = sector.String
	stock.MarketCap = marketCap.String
	stock.BuyZone = buyZone.String
	stock.SellZone = sellZone.String
	stock.AverageZone = averageZone.String

	if currentPrice.Valid {
		stock.CurrentPrice = &currentPrice.Float64
	}
	if dayChangePct.Valid {
		stock.DayChangePct = &dayChangePct.Float64
	}
	if lastUpdated.Valid {
		if t, err := time.Parse(time.RFC3339, lastUpdated.String); err == nil {
			stock.LastUpdated = &t
		}
	}

	stock.Symbol = strings.ToUpper(strings.TrimSpace(stock.Symbol))

	return stock, nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat64Ptr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullTimePtr(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}
