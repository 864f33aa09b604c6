package portfolio

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
)

const txnColumns = `id, symbol, name, side, quantity, price, amount, date, reason, notes, created_at`

// TransactionRepository persists stock transactions.
type TransactionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *sql.DB, log zerolog.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:  db,
		log: log.With().Str("repo", "portfolio_transactions").Logger(),
	}
}

// GetAll returns all transactions ordered by date ascending
func (r *TransactionRepository) GetAll() ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolio_transactions ORDER BY date ASC, id ASC`, txnColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// GetBySymbol returns all transactions for one symbol ordered by date ascending
func (r *TransactionRepository) GetBySymbol(symbol string) ([]domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolio_transactions WHERE symbol = ? ORDER BY date ASC, id ASC`, txnColumns)
	rows, err := r.db.Query(query, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for %s: %w", symbol, err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// GetByID returns a single transaction, or nil when not found
func (r *TransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM portfolio_transactions WHERE id = ?`, txnColumns)
	txn, err := scanTransaction(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}
	return txn, nil
}

// Create inserts a new transaction and sets its ID
func (r *TransactionRepository) Create(txn *domain.Transaction) error {
	now := time.Now().UTC()
	result, err := r.db.Exec(`
		INSERT INTO portfolio_transactions (symbol, name, side, quantity, price, amount, date, reason, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.Symbol, txn.Name, string(txn.Side), txn.Quantity, txn.Price, txn.Amount,
		txn.Date.Format("2006-01-02"), nullString(txn.Reason), nullString(txn.Notes),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction id: %w", err)
	}
	txn.ID = id
	txn.CreatedAt = &now

	r.log.Debug().Str("symbol", txn.Symbol).Str("side", string(txn.Side)).Msg("Transaction recorded")
	return nil
}

// Update rewrites an existing transaction
func (r *TransactionRepository) Update(txn *domain.Transaction) error {
	_, err := r.db.Exec(`
		UPDATE portfolio_transactions
		SET symbol = ?, name = ?, side = ?, quantity = ?, price = ?, amount = ?, date = ?, reason = ?, notes = ?
		WHERE id = ?`,
		txn.Symbol, txn.Name, string(txn.Side), txn.Quantity, txn.Price, txn.Amount,
		txn.Date.Format("2006-01-02"), nullString(txn.Reason), nullString(txn.Notes), txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.ID, err)
	}
	return nil
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM portfolio_transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

func (r *TransactionRepository) scanAll(rows *sql.Rows) ([]domain.Transaction, error) {
	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var txn domain.Transaction
	var side, dateStr, createdStr string
	var reason, notes sql.NullString

	err := row.Scan(&txn.ID, &txn.Symbol, &txn.Name, &side, &txn.Quantity, &txn.Price,
		&txn.Amount, &dateStr, &reason, &notes, &createdStr)
	if err != nil {
		return nil, err
	}

	txn.Side = domain.TxnSide(side)
	txn.Reason = reason.String
	txn.Notes = notes.String

	if txn.Date, err = time.Parse("2006-01-02", dateStr); err != nil {
		return nil, fmt.Errorf("failed to parse transaction date %q: %w", dateStr, err)
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
