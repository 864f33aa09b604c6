package database

import "fmt"

// schema holds the full table set. Statements are idempotent so Migrate can
// run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS stocks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		sector TEXT,
		market_cap TEXT,
		status TEXT NOT NULL DEFAULT 'WATCHING',
		buy_zone TEXT,
		sell_zone TEXT,
		average_zone TEXT,
		current_price REAL,
		day_change_pct REAL,
		last_updated TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS portfolio_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		name TEXT NOT NULL,
		side TEXT NOT NULL,
		quantity REAL NOT NULL,
		price REAL NOT NULL,
		amount REAL NOT NULL,
		date TEXT NOT NULL,
		reason TEXT,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_portfolio_transactions_symbol
		ON portfolio_transactions(symbol)`,
	`CREATE INDEX IF NOT EXISTS idx_portfolio_transactions_date
		ON portfolio_transactions(date)`,
	`CREATE TABLE IF NOT EXISTS mutual_fund_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scheme_code TEXT NOT NULL,
		scheme_name TEXT NOT NULL,
		side TEXT NOT NULL,
		units REAL NOT NULL,
		nav REAL NOT NULL,
		amount REAL NOT NULL,
		date TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mf_transactions_scheme
		ON mutual_fund_transactions(scheme_code)`,
	`CREATE TABLE IF NOT EXISTS fixed_deposits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bank_name TEXT NOT NULL,
		principal_amount REAL NOT NULL,
		interest_rate REAL NOT NULL DEFAULT 0,
		maturity_amount REAL,
		start_date TEXT NOT NULL,
		maturity_date TEXT,
		status TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS epf_accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employer_name TEXT NOT NULL,
		opening_balance REAL NOT NULL DEFAULT 0,
		opening_date TEXT,
		current_balance REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS nps_accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_number TEXT NOT NULL,
		opening_balance REAL NOT NULL DEFAULT 0,
		opening_date TEXT,
		current_value REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS savings_accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bank_name TEXT NOT NULL,
		current_balance REAL NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lending_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		borrower TEXT NOT NULL,
		principal_amount REAL NOT NULL,
		outstanding_amount REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS other_investments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT NOT NULL,
		purchase_value REAL NOT NULL,
		current_value REAL
	)`,
	`CREATE TABLE IF NOT EXISTS income_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		amount REAL NOT NULL,
		date TEXT NOT NULL,
		description TEXT,
		is_recurring INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS expense_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		amount REAL NOT NULL,
		date TEXT NOT NULL,
		description TEXT,
		is_recurring INTEGER NOT NULL DEFAULT 0
	)`,
}

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate() error {
	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
