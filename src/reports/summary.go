package reports

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/store"
)

const reportRule = 80

// WriteSummaryReport renders the human-readable overview: totals, monthly
// breakdown, top categories and merchants, and the latest balance per
// account. Aggregation happens here in decimal arithmetic; the store keeps
// amounts as text.
func WriteSummaryReport(w io.Writer, s *store.Store) error {
	stats, err := s.GatherStatistics()
	if err != nil {
		return err
	}
	txns, err := s.QueryTransactions(store.TransactionFilter{})
	if err != nil {
		return err
	}
	balances, err := s.LatestBalances()
	if err != nil {
		return err
	}

	rule := strings.Repeat("=", reportRule)
	thin := strings.Repeat("-", reportRule)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "FINANCIAL SUMMARY REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "OVERVIEW")
	fmt.Fprintln(w, thin)
	fmt.Fprintf(w, "Total Transactions: %d\n", stats.Transactions)
	fmt.Fprintf(w, "Files Processed: %d\n", stats.ImportedFiles)
	if len(txns) > 0 {
		fmt.Fprintf(w, "Date Range: %s to %s\n", txns[0].Date, txns[len(txns)-1].Date)
	}
	fmt.Fprintf(w, "Total Spent: %s\n", stats.TotalSpent.StringFixed(2))
	fmt.Fprintf(w, "Total Received: %s\n", stats.TotalReceived.StringFixed(2))
	fmt.Fprintf(w, "Recurring Bills Flagged: %d\n", stats.RecurringTransactions)
	fmt.Fprintf(w, "Paystubs: %d  Tax Documents: %d  Investment Accounts: %d\n",
		stats.Paystubs, stats.TaxDocuments, stats.InvestmentAccounts)
	fmt.Fprintln(w)

	writeMonthlyBreakdown(w, thin, txns)
	writeCategoryBreakdown(w, thin, txns)
	writeTopMerchants(w, thin, txns)
	writeLatestBalances(w, thin, balances)
	return nil
}

type bucket struct {
	key   string
	count int
	total decimal.Decimal
}

func aggregate(txns []models.Transaction, keyFn func(models.Transaction) string) []bucket {
	index := make(map[string]*bucket)
	for _, t := range txns {
		key := keyFn(t)
		if key == "" {
			continue
		}
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
		}
		b.count++
		b.total = b.total.Add(t.Amount)
	}
	out := make([]bucket, 0, len(index))
	for _, b := range index {
		out = append(out, *b)
	}
	return out
}

func writeMonthlyBreakdown(w io.Writer, thin string, txns []models.Transaction) {
	buckets := aggregate(txns, func(t models.Transaction) string {
		if len(t.Date) < 7 {
			return ""
		}
		return t.Date[:7]
	})
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].key < buckets[j].key })

	fmt.Fprintln(w, "MONTHLY BREAKDOWN")
	fmt.Fprintln(w, thin)
	for _, b := range buckets {
		fmt.Fprintf(w, "%s  %4d transactions  %12s\n", b.key, b.count, b.total.StringFixed(2))
	}
	fmt.Fprintln(w)
}

func writeCategoryBreakdown(w io.Writer, thin string, txns []models.Transaction) {
	buckets := aggregate(txns, func(t models.Transaction) string { return t.Category })
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].total.Abs().GreaterThan(buckets[j].total.Abs())
	})
	if len(buckets) > 20 {
		buckets = buckets[:20]
	}

	fmt.Fprintln(w, "TOP SPENDING CATEGORIES")
	fmt.Fprintln(w, thin)
	for _, b := range buckets {
		fmt.Fprintf(w, "%-24s  %4d transactions  %12s\n", b.key, b.count, b.total.StringFixed(2))
	}
	fmt.Fprintln(w)
}

func writeTopMerchants(w io.Writer, thin string, txns []models.Transaction) {
	buckets := aggregate(txns, func(t models.Transaction) string { return t.Merchant })
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].total.Abs().GreaterThan(buckets[j].total.Abs())
	})
	if len(buckets) > 20 {
		buckets = buckets[:20]
	}

	fmt.Fprintln(w, "TOP MERCHANTS")
	fmt.Fprintln(w, thin)
	for _, b := range buckets {
		fmt.Fprintf(w, "%-24s  %4d transactions  %12s\n", b.key, b.count, b.total.StringFixed(2))
	}
	fmt.Fprintln(w)
}

func writeLatestBalances(w io.Writer, thin string, balances []models.AccountBalance) {
	fmt.Fprintln(w, "LATEST ACCOUNT BALANCES")
	fmt.Fprintln(w, thin)
	for _, b := range balances {
		line := fmt.Sprintf("%-20s %-20s %12s", b.BankName, b.AccountType, b.Balance.StringFixed(2))
		if b.StatementDate != "" {
			line += "  as of " + b.StatementDate
		}
		fmt.Fprintln(w, line)
	}
}
