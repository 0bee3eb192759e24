package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/models"
)

// Cache key prefixes for the read interface.
const (
	ckTransactions = "transactions:"
	ckBalances     = "latest_balances"
	ckStatistics   = "statistics"
)

// TransactionFilter narrows QueryTransactions. Zero values mean "no
// constraint"; dates are ISO and inclusive.
type TransactionFilter struct {
	From        string
	To          string
	Category    string
	Bank        string
	AccountType string
	Recurring   *bool
}

func (f TransactionFilter) cacheKey() string {
	recurring := ""
	if f.Recurring != nil {
		recurring = fmt.Sprintf("%t", *f.Recurring)
	}
	return ckTransactions + strings.Join([]string{
		f.From, f.To, f.Category, f.Bank, f.AccountType, recurring}, "|")
}

// QueryTransactions returns transactions matching the filter, ordered by
// date. Results are cached until the next document commit.
func (s *Store) QueryTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	key := filter.cacheKey()
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			if txns, ok := cached.([]models.Transaction); ok {
				return txns, nil
			}
		}
	}

	query := `SELECT id, date, amount, description, merchant, category,
		bank_name, account_type, source_file, is_recurring FROM transactions`
	var conds []string
	var args []any
	if filter.From != "" {
		conds = append(conds, "date >= ?")
		args = append(args, filter.From)
	}
	if filter.To != "" {
		conds = append(conds, "date <= ?")
		args = append(args, filter.To)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Bank != "" {
		conds = append(conds, "bank_name = ?")
		args = append(args, filter.Bank)
	}
	if filter.AccountType != "" {
		conds = append(conds, "account_type = ?")
		args = append(args, filter.AccountType)
	}
	if filter.Recurring != nil {
		conds = append(conds, "is_recurring = ?")
		args = append(args, *filter.Recurring)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var txns []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Amount, &t.Description, &t.Merchant,
			&t.Category, &t.BankName, &t.AccountType, &t.SourceFile, &t.IsRecurring); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(key, txns, gocache.DefaultExpiration)
	}
	return txns, nil
}

// LatestBalances collapses the retained balance history to the most recent
// statement per (bank_name, account_type). The store keeps every snapshot;
// only this export view picks winners.
func (s *Store) LatestBalances() ([]models.AccountBalance, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(ckBalances); found {
			if bals, ok := cached.([]models.AccountBalance); ok {
				return bals, nil
			}
		}
	}

	rows, err := s.db.Query(`
		SELECT b.id, b.statement_date, b.balance, b.credit_limit, b.available_credit,
			b.minimum_payment, b.payment_due_date, b.apr, b.bank_name, b.account_type, b.source_file
		FROM account_balances b
		JOIN (
			SELECT bank_name, account_type, MAX(statement_date) AS max_date
			FROM account_balances
			GROUP BY bank_name, account_type
		) latest ON b.bank_name = latest.bank_name
			AND b.account_type = latest.account_type
			AND b.statement_date = latest.max_date
		GROUP BY b.bank_name, b.account_type
		ORDER BY b.bank_name, b.account_type`)
	if err != nil {
		return nil, fmt.Errorf("querying latest balances: %w", err)
	}
	defer rows.Close()

	var bals []models.AccountBalance
	for rows.Next() {
		var b models.AccountBalance
		var dueDate sql.NullString
		var stmtDate sql.NullString
		if err := rows.Scan(&b.ID, &stmtDate, &b.Balance, &b.CreditLimit, &b.AvailableCredit,
			&b.MinimumPayment, &dueDate, &b.APR, &b.BankName, &b.AccountType, &b.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning balance: %w", err)
		}
		b.StatementDate = stmtDate.String
		b.PaymentDueDate = dueDate.String
		bals = append(bals, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating balances: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ckBalances, bals, gocache.DefaultExpiration)
	}
	return bals, nil
}

// ListPaystubs returns all paystubs ordered by pay date.
func (s *Store) ListPaystubs() ([]models.Paystub, error) {
	rows, err := s.db.Query(`
		SELECT id, pay_date, pay_period_start, pay_period_end, employer_name,
			gross_pay, net_pay, deductions_json, total_deductions, ytd_gross, ytd_net,
			bank_name, account_type, source_file
		FROM paystubs ORDER BY pay_date, id`)
	if err != nil {
		return nil, fmt.Errorf("querying paystubs: %w", err)
	}
	defer rows.Close()

	var stubs []models.Paystub
	for rows.Next() {
		var p models.Paystub
		var deductionsJSON sql.NullString
		if err := rows.Scan(&p.ID, &p.PayDate, &p.PayPeriodStart, &p.PayPeriodEnd, &p.Employer,
			&p.GrossPay, &p.NetPay, &deductionsJSON, &p.TotalDeductions, &p.YTDGross, &p.YTDNet,
			&p.BankName, &p.AccountType, &p.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning paystub: %w", err)
		}
		if deductionsJSON.Valid && deductionsJSON.String != "" {
			if err := json.Unmarshal([]byte(deductionsJSON.String), &p.Deductions); err != nil {
				return nil, fmt.Errorf("decoding deductions: %w", err)
			}
		}
		stubs = append(stubs, p)
	}
	return stubs, rows.Err()
}

// ListTaxDocuments returns all tax documents ordered by year and form.
func (s *Store) ListTaxDocuments() ([]models.TaxDocument, error) {
	rows, err := s.db.Query(`
		SELECT id, tax_year, form_kind, payer, fields_json, bank_name, account_type, source_file
		FROM tax_documents ORDER BY tax_year, form_kind, id`)
	if err != nil {
		return nil, fmt.Errorf("querying tax documents: %w", err)
	}
	defer rows.Close()

	var docs []models.TaxDocument
	for rows.Next() {
		var d models.TaxDocument
		var fieldsJSON sql.NullString
		if err := rows.Scan(&d.ID, &d.TaxYear, &d.FormKind, &d.Payer, &fieldsJSON,
			&d.BankName, &d.AccountType, &d.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning tax document: %w", err)
		}
		if fieldsJSON.Valid && fieldsJSON.String != "" {
			if err := json.Unmarshal([]byte(fieldsJSON.String), &d.Fields); err != nil {
				return nil, fmt.Errorf("decoding tax fields: %w", err)
			}
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateRecurring flags the given transactions as recurring bills.
func (s *Store) UpdateRecurring(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.Exec(
		`UPDATE transactions SET is_recurring = TRUE WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("flagging recurring transactions: %w", err)
	}
	s.InvalidateCache()
	return nil
}

// Statistics summarizes what the database holds.
type Statistics struct {
	ImportedFiles          int
	Transactions           int
	RecurringTransactions  int
	AccountBalances        int
	InvestmentAccounts     int
	Holdings               int
	InvestmentTransactions int
	Paystubs               int
	TaxDocuments           int
	TotalSpent             decimal.Decimal
	TotalReceived          decimal.Decimal
}

// GatherStatistics counts every table and totals transaction flow.
// Amount totals are summed in Go so decimal semantics survive the TEXT
// storage format.
func (s *Store) GatherStatistics() (*Statistics, error) {
	if s.cache != nil {
		if cached, found := s.cache.Get(ckStatistics); found {
			if stats, ok := cached.(*Statistics); ok {
				return stats, nil
			}
		}
	}

	stats := &Statistics{}
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM imported_files`, &stats.ImportedFiles},
		{`SELECT COUNT(*) FROM transactions`, &stats.Transactions},
		{`SELECT COUNT(*) FROM transactions WHERE is_recurring`, &stats.RecurringTransactions},
		{`SELECT COUNT(*) FROM account_balances`, &stats.AccountBalances},
		{`SELECT COUNT(*) FROM investment_accounts`, &stats.InvestmentAccounts},
		{`SELECT COUNT(*) FROM holdings`, &stats.Holdings},
		{`SELECT COUNT(*) FROM investment_transactions`, &stats.InvestmentTransactions},
		{`SELECT COUNT(*) FROM paystubs`, &stats.Paystubs},
		{`SELECT COUNT(*) FROM tax_documents`, &stats.TaxDocuments},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("gathering statistics: %w", err)
		}
	}

	txns, err := s.QueryTransactions(TransactionFilter{})
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		if t.Amount.IsNegative() {
			stats.TotalSpent = stats.TotalSpent.Add(t.Amount.Abs())
		} else {
			stats.TotalReceived = stats.TotalReceived.Add(t.Amount)
		}
	}

	if s.cache != nil {
		s.cache.Set(ckStatistics, stats, gocache.DefaultExpiration)
	}
	return stats, nil
}
