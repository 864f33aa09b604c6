package mutualfunds

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const mfColumns = `id, scheme_code, scheme_name, side, units, nav, amount, date, notes, created_at`

// Repository persists mutual fund transactions.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new mutual fund repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "mutual_funds").Logger(),
	}
}

// GetAll returns all mutual fund transactions ordered by date ascending
func (r *Repository) GetAll() ([]MFTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM mutual_fund_transactions ORDER BY date ASC, id ASC`, mfColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query mutual fund transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]MFTransaction, 0)
	for rows.Next() {
		txn, err := scanMFTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mutual fund transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

// GetByID returns a single transaction, or nil when not found
func (r *Repository) GetByID(id int64) (*MFTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM mutual_fund_transactions WHERE id = ?`, mfColumns)
	txn, err := scanMFTransaction(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mutual fund transaction %d: %w", id, err)
	}
	return txn, nil
}

// Create inserts a new transaction and sets its ID
func (r *Repository) Create(txn *MFTransaction) error {
	now := time.Now().UTC()
	result, err := r.db.Exec(`
		INSERT INTO mutual_fund_transactions (scheme_code, scheme_name, side, units, nav, amount, date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.SchemeCode, txn.SchemeName, txn.Side, txn.Units, txn.NAV, txn.Amount,
		txn.Date.Format("2006-01-02"), nullString(txn.Notes), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert mutual fund transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get mutual fund transaction id: %w", err)
	}
	txn.ID = id
	txn.CreatedAt = &now

	r.log.Debug().Str("scheme", txn.SchemeCode).Str("side", txn.Side).Msg("Mutual fund transaction recorded")
	return nil
}

// Delete removes a transaction
func (r *Repository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM mutual_fund_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mutual fund transaction %d: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMFTransaction(row scanner) (*MFTransaction, error) {
	var txn MFTransaction
	var dateStr, createdStr string
	var notes sql.NullString

	err := row.Scan(&txn.ID, &txn.SchemeCode, &txn.SchemeName, &txn.Side, &txn.Units,
		&txn.NAV, &txn.Amount, &dateStr, &notes, &createdStr)
	if err != nil {
		return nil, err
	}

	txn.Notes = notes.String
	if txn.Date, err = time.Parse("2006-01-02", dateStr); err != nil {
		return nil, fmt.Errorf("failed to parse mutual fund transaction date %q: %w", dateStr, err)
	}
	if created, err := time.Parse(time.RFC3339, createdStr); err == nil {
		txn.CreatedAt = &created
	}

	return &txn, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
