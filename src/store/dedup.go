package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/username/finsift/src/extractors"
	"github.com/username/finsift/src/models"
)

// querier is satisfied by *sql.DB and *sql.Tx so existence checks run
// inside the document's transaction.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// TransactionHashID is the cross-file dedup key for ordinary transactions:
// date, amount, normalized merchant (or description when no merchant was
// extracted), scoped to the account. The same purchase appearing in two
// statement files collapses to one row.
func TransactionHashID(txn models.Transaction) string {
	identity := txn.Merchant
	if identity == "" {
		identity = txn.Description
	}
	key := strings.Join([]string{
		txn.Date,
		txn.Amount.StringFixed(2),
		extractors.NormalizeMerchant(identity),
		txn.BankName,
		txn.AccountType,
	}, "|")
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

func transactionExists(q querier, hashID string) (bool, error) {
	return rowExists(q, `SELECT 1 FROM transactions WHERE hash_id = ?`, hashID)
}

// Balance identity includes source_file: the same statement re-parsed is a
// duplicate, the same date from two different files is not.
func balanceExists(q querier, bal *models.AccountBalance) (bool, error) {
	return rowExists(q, `
		SELECT 1 FROM account_balances
		WHERE statement_date = ? AND source_file = ? AND bank_name = ? AND account_type = ?`,
		bal.StatementDate, bal.SourceFile, bal.BankName, bal.AccountType)
}

func paystubExists(q querier, stub models.Paystub) (bool, error) {
	return rowExists(q, `SELECT 1 FROM paystubs WHERE pay_date = ? AND source_file = ?`,
		stub.PayDate, stub.SourceFile)
}

func taxDocumentExists(q querier, doc *models.TaxDocument) (bool, error) {
	return rowExists(q, `
		SELECT 1 FROM tax_documents WHERE tax_year = ? AND form_kind = ? AND source_file = ?`,
		doc.TaxYear, doc.FormKind, doc.SourceFile)
}

func investmentAccountExists(q querier, acct *models.InvestmentAccount) (bool, error) {
	return rowExists(q, `
		SELECT 1 FROM investment_accounts WHERE statement_date = ? AND source_file = ?`,
		acct.StatementDate, acct.SourceFile)
}

func rowExists(q querier, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: existence check: %v", ErrPersistenceFailed, err)
	}
	return true, nil
}
