// Package reports renders the export surfaces: the transactions CSV and
// the text summary report. It consumes only the store's read interface.
package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/store"
)

// WriteTransactionsCSV writes the filtered transactions as CSV. The '#'
// metadata header explains the columns so the file stands on its own when
// handed to an analysis tool.
func WriteTransactionsCSV(w io.Writer, s *store.Store, filter store.TransactionFilter, includeMetadata bool) error {
	txns, err := s.QueryTransactions(filter)
	if err != nil {
		return err
	}

	if includeMetadata {
		if err := writeMetadataHeader(w, s, txns); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"date", "amount", "description", "merchant", "category",
		"bank_name", "account_type", "is_recurring", "source_file",
	}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, t := range txns {
		record := []string{
			t.Date,
			t.Amount.StringFixed(2),
			t.Description,
			t.Merchant,
			t.Category,
			t.BankName,
			t.AccountType,
			fmt.Sprintf("%t", t.IsRecurring),
			t.SourceFile,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMetadataHeader(w io.Writer, s *store.Store, txns []models.Transaction) error {
	stats, err := s.GatherStatistics()
	if err != nil {
		return err
	}
	minDate, maxDate := "unknown", "unknown"
	if len(txns) > 0 {
		minDate, maxDate = txns[0].Date, txns[len(txns)-1].Date
	}

	_, err = fmt.Fprintf(w, `# FINANCIAL TRANSACTION DATA
# Extracted and deduplicated transactions from imported statements.
#
# DATA PERIOD: %s to %s
# TOTAL TRANSACTIONS: %d
# FILES PROCESSED: %d
#
# COLUMNS:
#   - date: transaction date (ISO)
#   - amount: signed amount, negative for debits
#   - description: cleaned transaction description
#   - merchant: normalized merchant name (if extractable)
#   - category: keyword-derived spending category
#   - bank_name / account_type: account the transaction belongs to
#   - is_recurring: flagged by recurring-bill detection
#   - source_file: statement file the row came from
#
`, minDate, maxDate, len(txns), stats.ImportedFiles)
	return err
}
