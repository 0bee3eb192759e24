package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at databasePath and ensures
// the schema exists. The handle is returned to the caller and threaded
// through the pipeline explicitly; there is no package-level connection.
func Open(databasePath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", databasePath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database at %s: %w", databasePath, err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createSchema(db *sql.DB) error {
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS imported_files (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_identity TEXT NOT NULL UNIQUE,
		source_path TEXT NOT NULL,
		document_kind TEXT NOT NULL,
		record_count INTEGER NOT NULL DEFAULT 0,
		imported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT,
		merchant TEXT,
		category TEXT,
		bank_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		source_file TEXT NOT NULL,
		is_recurring BOOLEAN DEFAULT FALSE,
		hash_id TEXT NOT NULL UNIQUE
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
	CREATE INDEX IF NOT EXISTS idx_transactions_source ON transactions(source_file);

	CREATE TABLE IF NOT EXISTS account_balances (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		statement_date TEXT,
		balance TEXT NOT NULL,
		credit_limit TEXT,
		available_credit TEXT,
		minimum_payment TEXT,
		payment_due_date TEXT,
		apr TEXT,
		bank_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		source_file TEXT NOT NULL,
		UNIQUE(statement_date, source_file, bank_name, account_type)
	);

	CREATE TABLE IF NOT EXISTS investment_accounts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bank_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		portfolio_value TEXT,
		statement_date TEXT,
		source_file TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS holdings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER NOT NULL,
		ticker TEXT,
		security_name TEXT,
		quantity TEXT,
		market_value TEXT,
		FOREIGN KEY(account_id) REFERENCES investment_accounts(id)
	);

	CREATE TABLE IF NOT EXISTS investment_transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		account_id INTEGER NOT NULL,
		transaction_date TEXT,
		transaction_type TEXT NOT NULL,
		ticker TEXT,
		quantity TEXT,
		price TEXT,
		amount TEXT,
		FOREIGN KEY(account_id) REFERENCES investment_accounts(id)
	);

	CREATE TABLE IF NOT EXISTS paystubs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pay_date TEXT,
		pay_period_start TEXT,
		pay_period_end TEXT,
		employer_name TEXT,
		gross_pay TEXT,
		net_pay TEXT,
		deductions_json TEXT,
		total_deductions TEXT,
		ytd_gross TEXT,
		ytd_net TEXT,
		bank_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		source_file TEXT NOT NULL,
		UNIQUE(pay_date, source_file)
	);

	CREATE TABLE IF NOT EXISTS tax_documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tax_year INTEGER NOT NULL,
		form_kind TEXT NOT NULL,
		payer TEXT,
		fields_json TEXT,
		bank_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		source_file TEXT NOT NULL,
		UNIQUE(tax_year, form_kind, source_file)
	);
	`

	if _, err := db.Exec(createTableStatement); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}
