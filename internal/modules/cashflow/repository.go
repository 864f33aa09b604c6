package cashflow

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository persists income and expense entries.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new cash flow repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "cashflow").Logger(),
	}
}

// GetIncome returns all income entries ordered by date ascending
func (r *Repository) GetIncome() ([]Entry, error) {
	return r.getEntries(`SELECT id, source, amount, date, description, is_recurring
		FROM income_transactions ORDER BY date ASC, id ASC`)
}

// GetExpenses returns all expense entries ordered by date ascending
func (r *Repository) GetExpenses() ([]Entry, error) {
	return r.getEntries(`SELECT id, category, amount, date, description, is_recurring
		FROM expense_transactions ORDER BY date ASC, id ASC`)
}

// CreateIncome inserts an income entry and sets its ID
func (r *Repository) CreateIncome(entry *Entry) error {
	return r.createEntry("income_transactions", "source", entry)
}

// CreateExpense inserts an expense entry and sets its ID
func (r *Repository) CreateExpense(entry *Entry) error {
	return r.createEntry("expense_transactions", "category", entry)
}

// DeleteIncome removes an income entry
func (r *Repository) DeleteIncome(id int64) error {
	return r.deleteEntry("income_transactions", id)
}

// DeleteExpense removes an expense entry
func (r *Repository) DeleteExpense(id int64) error {
	return r.deleteEntry("expense_transactions", id)
}

func (r *Repository) getEntries(query string) ([]Entry, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var entry Entry
		var dateStr string
		var description sql.NullString
		var recurring int
		if err := rows.Scan(&entry.ID, &entry.Label, &entry.Amount, &dateStr, &description, &recurring); err != nil {
			return nil, fmt.Errorf("failed to scan cash flow entry: %w", err)
		}
		entry.Description = description.String
		entry.IsRecurring = recurring != 0
		if entry.Date, err = time.Parse("2006-01-02", dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse cash flow date %q: %w", dateStr, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *Repository) createEntry(table, labelColumn string, entry *Entry) error {
	recurring := 0
	if entry.IsRecurring {
		recurring = 1
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s, amount, date, description, is_recurring)
		VALUES (?, ?, ?, ?, ?)`, table, labelColumn)
	result, err := r.db.Exec(query, entry.Label, entry.Amount,
		entry.Date.Format("2006-01-02"), nullString(entry.Description), recurring)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	entry.ID, err = result.LastInsertId()
	return err
}

func (r *Repository) deleteEntry(table string, id int64) error {
	_, err := r.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
