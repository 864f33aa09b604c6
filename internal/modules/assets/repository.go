// Package assets manages balance-style assets: deposits, retirement
// accounts, bank balances, lending and other valued holdings. Unlike stocks
// and mutual funds these are not replayed from transactions; the stored
// balance is the value.
package assets

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
)

// Repository persists balance-style assets.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new assets repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "assets").Logger(),
	}
}

// GetFixedDeposits returns all fixed deposits
func (r *Repository) GetFixedDeposits() ([]domain.FixedDeposit, error) {
	rows, err := r.db.Query(`
		SELECT id, bank_name, principal_amount, interest_rate, maturity_amount, start_date, maturity_date, status
		FROM fixed_deposits ORDER BY start_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixed deposits: %w", err)
	}
	defer rows.Close()

	fds := make([]domain.FixedDeposit, 0)
	for rows.Next() {
		var fd domain.FixedDeposit
		var startStr string
		var maturityStr sql.NullString
		var maturityAmount sql.NullFloat64

		err := rows.Scan(&fd.ID, &fd.BankName, &fd.Principal, &fd.InterestRate,
			&maturityAmount, &startStr, &maturityStr, &fd.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixed deposit: %w", err)
		}

		if maturityAmount.Valid {
			fd.MaturityAmount = &maturityAmount.Float64
		}
		if fd.StartDate, err = time.Parse("2006-01-02", startStr); err != nil {
			return nil, fmt.Errorf("failed to parse fixed deposit start date %q: %w", startStr, err)
		}
		if maturityStr.Valid {
			if maturity, err := time.Parse("2006-01-02", maturityStr.String); err == nil {
				fd.MaturityDate = &maturity
			}
		}
		fds = append(fds, fd)
	}
	return fds, rows.Err()
}

// CreateFixedDeposit inserts a fixed deposit and sets its ID
func (r *Repository) CreateFixedDeposit(fd *domain.FixedDeposit) error {
	if fd.Status == "" {
		fd.Status = domain.AssetStatusActive
	}
	var maturityDate interface{}
	if fd.MaturityDate != nil {
		maturityDate = fd.MaturityDate.Format("2006-01-02")
	}
	result, err := r.db.Exec(`
		INSERT INTO fixed_deposits (bank_name, principal_amount, interest_rate, maturity_amount, start_date, maturity_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fd.BankName, fd.Principal, fd.InterestRate, fd.MaturityAmount,
		fd.StartDate.Format("2006-01-02"), maturityDate, fd.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fixed deposit: %w", err)
	}
	fd.ID, err = result.LastInsertId()
	return err
}

// UpdateFixedDepositStatus flips a deposit between active and closed
func (r *Repository) UpdateFixedDepositStatus(id int64, status string) error {
	_, err := r.db.Exec(`UPDATE fixed_deposits SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update fixed deposit %d: %w", id, err)
	}
	return nil
}

// DeleteFixedDeposit removes a fixed deposit
func (r *Repository) DeleteFixedDeposit(id int64) error {
	return r.deleteFrom("fixed_deposits", id)
}

// GetEPFAccounts returns all EPF accounts
func (r *Repository) GetEPFAccounts() ([]domain.EPFAccount, error) {
	rows, err := r.db.Query(`
		SELECT id, employer_name, opening_balance, opening_date, current_balance
		FROM epf_accounts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query epf accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.EPFAccount, 0)
	for rows.Next() {
		var acct domain.EPFAccount
		var openingStr sql.NullString
		if err := rows.Scan(&acct.ID, &acct.EmployerName, &acct.OpeningBalance, &openingStr, &acct.CurrentBalance); err != nil {
			return nil, fmt.Errorf("failed to scan epf account: %w", err)
		}
		if openingStr.Valid {
			if opening, err := time.Parse("2006-01-02", openingStr.String); err == nil {
				acct.OpeningDate = &opening
			}
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// CreateEPFAccount inserts an EPF account and sets its ID
func (r *Repository) CreateEPFAccount(acct *domain.EPFAccount) error {
	var openingDate interface{}
	if acct.OpeningDate != nil {
		openingDate = acct.OpeningDate.Format("2006-01-02")
	}
	result, err := r.db.Exec(`
		INSERT INTO epf_accounts (employer_name, opening_balance, opening_date, current_balance)
		VALUES (?, ?, ?, ?)`,
		acct.EmployerName, acct.OpeningBalance, openingDate, acct.CurrentBalance,
	)
	if err != nil {
		return fmt.Errorf("failed to insert epf account: %w", err)
	}
	acct.ID, err = result.LastInsertId()
	return err
}

// UpdateEPFBalance updates the current balance of an EPF account
func (r *Repository) UpdateEPFBalance(id int64, balance float64) error {
	_, err := r.db.Exec(`UPDATE epf_accounts SET current_balance = ? WHERE id = ?`, balance, id)
	if err != nil {
		return fmt.Errorf("failed to update epf account %d: %w", id, err)
	}
	return nil
}

// DeleteEPFAccount removes an EPF account
func (r *Repository) DeleteEPFAccount(id int64) error {
	return r.deleteFrom("epf_accounts", id)
}

// GetNPSAccounts returns all NPS accounts
func (r *Repository) GetNPSAccounts() ([]domain.NPSAccount, error) {
	rows, err := r.db.Query(`
		SELECT id, account_number, opening_balance, opening_date, current_value
		FROM nps_accounts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nps accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.NPSAccount, 0)
	for rows.Next() {
		var acct domain.NPSAccount
		var openingStr sql.NullString
		if err := rows.Scan(&acct.ID, &acct.AccountNumber, &acct.OpeningBalance, &openingStr, &acct.CurrentValue); err != nil {
			return nil, fmt.Errorf("failed to scan nps account: %w", err)
		}
		if openingStr.Valid {
			if opening, err := time.Parse("2006-01-02", openingStr.String); err == nil {
				acct.OpeningDate = &opening
			}
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// CreateNPSAccount inserts an NPS account and sets its ID
func (r *Repository) CreateNPSAccount(acct *domain.NPSAccount) error {
	var openingDate interface{}
	if acct.OpeningDate != nil {
		openingDate = acct.OpeningDate.Format("2006-01-02")
	}
	result, err := r.db.Exec(`
		INSERT INTO nps_accounts (account_number, opening_balance, opening_date, current_value)
		VALUES (?, ?, ?, ?)`,
		acct.AccountNumber, acct.OpeningBalance, openingDate, acct.CurrentValue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert nps account: %w", err)
	}
	acct.ID, err = result.LastInsertId()
	return err
}

// UpdateNPSValue updates the current value of an NPS account
func (r *Repository) UpdateNPSValue(id int64, value float64) error {
	_, err := r.db.Exec(`UPDATE nps_accounts SET current_value = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("failed to update nps account %d: %w", id, err)
	}
	return nil
}

// DeleteNPSAccount removes an NPS account
func (r *Repository) DeleteNPSAccount(id int64) error {
	return r.deleteFrom("nps_accounts", id)
}

// GetSavingsAccounts returns all savings accounts
func (r *Repository) GetSavingsAccounts() ([]domain.SavingsAccount, error) {
	rows, err := r.db.Query(`SELECT id, bank_name, current_balance FROM savings_accounts ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query savings accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.SavingsAccount, 0)
	for rows.Next() {
		var acct domain.SavingsAccount
		if err := rows.Scan(&acct.ID, &acct.BankName, &acct.CurrentBalance); err != nil {
			return nil, fmt.Errorf("failed to scan savings account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// CreateSavingsAccount inserts a savings account and sets its ID
func (r *Repository) CreateSavingsAccount(acct *domain.SavingsAccount) error {
	result, err := r.db.Exec(`INSERT INTO savings_accounts (bank_name, current_balance) VALUES (?, ?)`,
		acct.BankName, acct.CurrentBalance)
	if err != nil {
		return fmt.Errorf("failed to insert savings account: %w", err)
	}
	acct.ID, err = result.LastInsertId()
	return err
}

// UpdateSavingsBalance updates the balance of a savings account
func (r *Repository) UpdateSavingsBalance(id int64, balance float64) error {
	_, err := r.db.Exec(`UPDATE savings_accounts SET current_balance = ? WHERE id = ?`, balance, id)
	if err != nil {
		return fmt.Errorf("failed to update savings account %d: %w", id, err)
	}
	return nil
}

// DeleteSavingsAccount removes a savings account
func (r *Repository) DeleteSavingsAccount(id int64) error {
	return r.deleteFrom("savings_accounts", id)
}

// GetLendingRecords returns all lending records
func (r *Repository) GetLendingRecords() ([]domain.LendingRecord, error) {
	rows, err := r.db.Query(`
		SELECT id, borrower, principal_amount, outstanding_amount, status
		FROM lending_records ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lending records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.LendingRecord, 0)
	for rows.Next() {
		var rec domain.LendingRecord
		if err := rows.Scan(&rec.ID, &rec.Borrower, &rec.Principal, &rec.Outstanding, &rec.Status); err != nil {
			return nil, fmt.Errorf("failed to scan lending record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateLendingRecord inserts a lending record and sets its ID
func (r *Repository) CreateLendingRecord(rec *domain.LendingRecord) error {
	if rec.Status == "" {
		rec.Status = domain.AssetStatusActive
	}
	if rec.Outstanding == 0 {
		rec.Outstanding = rec.Principal
	}
	result, err := r.db.Exec(`
		INSERT INTO lending_records (borrower, principal_amount, outstanding_amount, status)
		VALUES (?, ?, ?, ?)`,
		rec.Borrower, rec.Principal, rec.Outstanding, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lending record: %w", err)
	}
	rec.ID, err = result.LastInsertId()
	return err
}

// UpdateLendingOutstanding records a repayment by setting the new outstanding
// amount; a zero outstanding closes the record.
func (r *Repository) UpdateLendingOutstanding(id int64, outstanding float64) error {
	status := domain.AssetStatusActive
	if outstanding <= 0 {
		status = domain.AssetStatusClosed
		outstanding = 0
	}
	_, err := r.db.Exec(`UPDATE lending_records SET outstanding_amount = ?, status = ? WHERE id = ?`,
		outstanding, status, id)
	if err != nil {
		return fmt.Errorf("failed to update lending record %d: %w", id, err)
	}
	return nil
}

// DeleteLendingRecord removes a lending record
func (r *Repository) DeleteLendingRecord(id int64) error {
	return r.deleteFrom("lending_records", id)
}

// GetOtherInvestments returns all other investments
func (r *Repository) GetOtherInvestments() ([]domain.OtherInvestment, error) {
	rows, err := r.db.Query(`SELECT id, description, purchase_value, current_value FROM other_investments ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query other investments: %w", err)
	}
	defer rows.Close()

	investments := make([]domain.OtherInvestment, 0)
	for rows.Next() {
		var inv domain.OtherInvestment
		var current sql.NullFloat64
		if err := rows.Scan(&inv.ID, &inv.Description, &inv.PurchaseValue, &current); err != nil {
			return nil, fmt.Errorf("failed to scan other investment: %w", err)
		}
		if current.Valid {
			inv.CurrentValue = &current.Float64
		}
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

// CreateOtherInvestment inserts an other-investment record and sets its ID
func (r *Repository) CreateOtherInvestment(inv *domain.OtherInvestment) error {
	result, err := r.db.Exec(`
		INSERT INTO other_investments (description, purchase_value, current_value)
		VALUES (?, ?, ?)`,
		inv.Description, inv.PurchaseValue, inv.CurrentValue,
	)
	if err != nil {
		return fmt.Errorf("failed to insert other investment: %w", err)
	}
	inv.ID, err = result.LastInsertId()
	return err
}

// UpdateOtherInvestmentValue updates the current valuation
func (r *Repository) UpdateOtherInvestmentValue(id int64, value float64) error {
	_, err := r.db.Exec(`UPDATE other_investments SET current_value = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("failed to update other investment %d: %w", id, err)
	}
	return nil
}

// DeleteOtherInvestment removes an other-investment record
func (r *Repository) DeleteOtherInvestment(id int64) error {
	return r.deleteFrom("other_investments", id)
}

func (r *Repository) deleteFrom(table string, id int64) error {
	_, err := r.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}
