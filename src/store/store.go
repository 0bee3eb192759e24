// Package store is the persistence coordinator: one transaction per
// document, parents before children, dedup checks before every insert.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/username/finsift/src/logger"
	"github.com/username/finsift/src/models"
)

var (
	ErrPersistenceFailed = errors.New("persisting document failed")
	ErrUnknownKind       = errors.New("unknown document kind")
)

// Store wraps the database handle and the query cache. All reads and
// writes of persisted records go through it.
type Store struct {
	db    *sql.DB
	cache *cache.Cache
}

func New(db *sql.DB, c *cache.Cache) *Store {
	return &Store{db: db, cache: c}
}

// PersistResult tallies what one document's commit did.
type PersistResult struct {
	Inserted int
	Skipped  int
}

// IsFileImported reports whether a file with this content identity has
// already been committed.
func (s *Store) IsFileImported(fileIdentity string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM imported_files WHERE file_identity = ?`, fileIdentity).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking imported file: %w", err)
	}
	return true, nil
}

// RecordImport marks a file imported. Called only after the document's
// primary records have committed; a crash before this point leaves the
// file unmarked so the next run retries it and record-level dedup absorbs
// the overlap. INSERT OR REPLACE keeps forced re-imports to one row.
func (s *Store) RecordImport(file models.ImportedFile) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO imported_files (file_identity, source_path, document_kind, record_count)
		VALUES (?, ?, ?, ?)`,
		file.FileIdentity, file.SourcePath, string(file.DocumentKind), file.RecordCount)
	if err != nil {
		return fmt.Errorf("recording import of %s: %w", file.SourcePath, err)
	}
	return nil
}

// PersistDocument writes every primary record of one routed document
// inside a single transaction. Any failure rolls the whole document back.
// Duplicates are skipped and tallied, never errors. The query cache is
// invalidated on every successful commit.
func (s *Store) PersistDocument(doc *models.RoutedDocument) (*PersistResult, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrPersistenceFailed, err)
	}
	defer tx.Rollback()

	result := &PersistResult{}
	switch doc.Kind {
	case models.KindTax:
		err = s.persistTax(tx, doc.Tax, result)
	case models.KindPaystub:
		err = s.persistPaystubs(tx, doc.Paystubs, result)
	case models.KindInvestment:
		err = s.persistInvestment(tx, doc.Investment, result)
	case models.KindStatement:
		err = s.persistStatement(tx, doc, result)
	case models.KindUnknown:
		// Nothing to write; the caller still records the import.
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownKind, doc.Kind)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrPersistenceFailed, err)
	}
	s.InvalidateCache()
	return result, nil
}

func (s *Store) persistTax(tx *sql.Tx, doc *models.TaxDocument, result *PersistResult) error {
	if doc == nil {
		return nil
	}
	exists, err := taxDocumentExists(tx, doc)
	if err != nil {
		return err
	}
	if exists {
		result.Skipped++
		return nil
	}

	fieldsJSON, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("%w: encoding tax fields: %v", ErrPersistenceFailed, err)
	}
	_, err = tx.Exec(`
		INSERT INTO tax_documents (tax_year, form_kind, payer, fields_json, bank_name, account_type, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		doc.TaxYear, doc.FormKind, doc.Payer, string(fieldsJSON),
		doc.BankName, doc.AccountType, doc.SourceFile)
	if err != nil {
		if isUniqueViolation(err) {
			result.Skipped++
			return nil
		}
		return fmt.Errorf("%w: inserting tax document: %v", ErrPersistenceFailed, err)
	}
	result.Inserted++
	return nil
}

func (s *Store) persistPaystubs(tx *sql.Tx, stubs []models.Paystub, result *PersistResult) error {
	if len(stubs) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`
		INSERT INTO paystubs (pay_date, pay_period_start, pay_period_end, employer_name,
			gross_pay, net_pay, deductions_json, total_deductions, ytd_gross, ytd_net,
			bank_name, account_type, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: preparing paystub insert: %v", ErrPersistenceFailed, err)
	}
	defer stmt.Close()

	for _, stub := range stubs {
		exists, err := paystubExists(tx, stub)
		if err != nil {
			return err
		}
		if exists {
			result.Skipped++
			continue
		}
		deductionsJSON, err := json.Marshal(stub.Deductions)
		if err != nil {
			return fmt.Errorf("%w: encoding deductions: %v", ErrPersistenceFailed, err)
		}
		_, err = stmt.Exec(stub.PayDate, stub.PayPeriodStart, stub.PayPeriodEnd, stub.Employer,
			stub.GrossPay, stub.NetPay, string(deductionsJSON), stub.TotalDeductions,
			stub.YTDGross, stub.YTDNet, stub.BankName, stub.AccountType, stub.SourceFile)
		if err != nil {
			if isUniqueViolation(err) {
				result.Skipped++
				continue
			}
			return fmt.Errorf("%w: inserting paystub: %v", ErrPersistenceFailed, err)
		}
		result.Inserted++
	}
	return nil
}

// persistInvestment inserts the account row first so holdings and
// investment transactions can reference its id.
func (s *Store) persistInvestment(tx *sql.Tx, acct *models.InvestmentAccount, result *PersistResult) error {
	if acct == nil {
		return nil
	}
	exists, err := investmentAccountExists(tx, acct)
	if err != nil {
		return err
	}
	if exists {
		result.Skipped++
		return nil
	}

	res, err := tx.Exec(`
		INSERT INTO investment_accounts (bank_name, account_type, portfolio_value, statement_date, source_file)
		VALUES (?, ?, ?, ?, ?)`,
		acct.BankName, acct.AccountType, acct.PortfolioValue, acct.StatementDate, acct.SourceFile)
	if err != nil {
		return fmt.Errorf("%w: inserting investment account: %v", ErrPersistenceFailed, err)
	}
	accountID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: reading account id: %v", ErrPersistenceFailed, err)
	}
	result.Inserted++

	for _, h := range acct.Holdings {
		_, err := tx.Exec(`
			INSERT INTO holdings (account_id, ticker, security_name, quantity, market_value)
			VALUES (?, ?, ?, ?, ?)`,
			accountID, h.Ticker, h.Name, h.Quantity, h.Value)
		if err != nil {
			return fmt.Errorf("%w: inserting holding %s: %v", ErrPersistenceFailed, h.Ticker, err)
		}
		result.Inserted++
	}
	for _, t := range acct.Transactions {
		_, err := tx.Exec(`
			INSERT INTO investment_transactions (account_id, transaction_date, transaction_type, ticker, quantity, price, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			accountID, t.Date, t.Type, t.Ticker, t.Quantity, t.Price, t.Amount)
		if err != nil {
			return fmt.Errorf("%w: inserting investment transaction: %v", ErrPersistenceFailed, err)
		}
		result.Inserted++
	}
	return nil
}

// persistStatement writes the balance snapshot (when present) and the
// ordinary transactions of one statement.
func (s *Store) persistStatement(tx *sql.Tx, doc *models.RoutedDocument, result *PersistResult) error {
	if doc.Balance != nil {
		if err := s.persistBalance(tx, doc.Balance, result); err != nil {
			return err
		}
	}
	if len(doc.Transactions) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO transactions (date, amount, description, merchant, category,
			bank_name, account_type, source_file, is_recurring, hash_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: preparing transaction insert: %v", ErrPersistenceFailed, err)
	}
	defer stmt.Close()

	for _, txn := range doc.Transactions {
		hashID := TransactionHashID(txn)
		exists, err := transactionExists(tx, hashID)
		if err != nil {
			return err
		}
		if exists {
			result.Skipped++
			continue
		}
		_, err = stmt.Exec(txn.Date, txn.Amount, txn.Description, txn.Merchant, txn.Category,
			txn.BankName, txn.AccountType, txn.SourceFile, txn.IsRecurring, hashID)
		if err != nil {
			if isUniqueViolation(err) {
				result.Skipped++
				continue
			}
			return fmt.Errorf("%w: inserting transaction: %v", ErrPersistenceFailed, err)
		}
		result.Inserted++
	}
	return nil
}

func (s *Store) persistBalance(tx *sql.Tx, bal *models.AccountBalance, result *PersistResult) error {
	exists, err := balanceExists(tx, bal)
	if err != nil {
		return err
	}
	if exists {
		result.Skipped++
		return nil
	}
	_, err = tx.Exec(`
		INSERT INTO account_balances (statement_date, balance, credit_limit, available_credit,
			minimum_payment, payment_due_date, apr, bank_name, account_type, source_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		bal.StatementDate, bal.Balance, bal.CreditLimit, bal.AvailableCredit,
		bal.MinimumPayment, bal.PaymentDueDate, bal.APR,
		bal.BankName, bal.AccountType, bal.SourceFile)
	if err != nil {
		if isUniqueViolation(err) {
			result.Skipped++
			return nil
		}
		return fmt.Errorf("%w: inserting balance: %v", ErrPersistenceFailed, err)
	}
	result.Inserted++
	return nil
}

// InvalidateCache flushes the query cache. Called after every commit that
// can change query results.
func (s *Store) InvalidateCache() {
	if s.cache == nil {
		return
	}
	s.cache.Flush()
	logger.L.Debug("query cache invalidated")
}

// isUniqueViolation matches the sqlite driver's constraint error text. The
// unique indexes are the backstop behind the pre-insert existence checks.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
