package enrich

import (
	"path/filepath"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/finsift/src/database"
	"github.com/username/finsift/src/models"
	"github.com/username/finsift/src/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.New(db, gocache.New(time.Minute, time.Minute))
}

func persistTransactions(t *testing.T, s *store.Store, txns []models.Transaction) {
	t.Helper()
	_, err := s.PersistDocument(&models.RoutedDocument{
		Kind:         models.KindStatement,
		SourceFile:   "stmt.txt",
		Transactions: txns,
	})
	require.NoError(t, err)
}

func txn(date, amount, merchant string) models.Transaction {
	return models.Transaction{
		Date:        date,
		Amount:      decimal.RequireFromString(amount),
		Description: merchant,
		Merchant:    merchant,
		BankName:    "chase",
		AccountType: models.AccountChecking,
		SourceFile:  "stmt.txt",
	}
}

func TestRecurringDetectorFlagsMonthlySeries(t *testing.T) {
	s := newTestStore(t)
	persistTransactions(t, s, []models.Transaction{
		txn("2024-01-15", "-15.99", "Netflix"),
		txn("2024-02-15", "-15.99", "Netflix"),
		txn("2024-03-15", "-15.99", "Netflix"),
		txn("2024-01-20", "-6.75", "Starbucks"),
	})

	flagged, err := NewRecurringDetector().Apply(s)
	require.NoError(t, err)
	assert.Equal(t, 3, flagged)

	recurring := true
	series, err := s.QueryTransactions(store.TransactionFilter{Recurring: &recurring})
	require.NoError(t, err)
	require.Len(t, series, 3)
	for _, tx := range series {
		assert.Equal(t, "Netflix", tx.Merchant)
	}
}

func TestRecurringDetectorIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	persistTransactions(t, s, []models.Transaction{
		txn("2024-01-15", "-15.99", "Netflix"),
		txn("2024-02-15", "-15.99", "Netflix"),
		txn("2024-03-15", "-15.99", "Netflix"),
	})

	d := NewRecurringDetector()
	flagged, err := d.Apply(s)
	require.NoError(t, err)
	assert.Equal(t, 3, flagged)

	flagged, err = d.Apply(s)
	require.NoError(t, err)
	assert.Zero(t, flagged, "already-flagged rows are not counted again")
}

func TestRecurringDetectorToleratesSmallDrift(t *testing.T) {
	s := newTestStore(t)
	persistTransactions(t, s, []models.Transaction{
		txn("2024-01-05", "-42.17", "City Power"),
		txn("2024-02-05", "-42.90", "City Power"),
		txn("2024-03-06", "-41.80", "City Power"),
	})

	flagged, err := NewRecurringDetector().Apply(s)
	require.NoError(t, err)
	assert.Equal(t, 3, flagged)
}

func TestRecurringDetectorRejectsIrregularAmounts(t *testing.T) {
	s := newTestStore(t)
	persistTransactions(t, s, []models.Transaction{
		txn("2024-01-10", "-20.00", "Amazon"),
		txn("2024-02-10", "-90.00", "Amazon"),
		txn("2024-03-10", "-150.00", "Amazon"),
	})

	flagged, err := NewRecurringDetector().Apply(s)
	require.NoError(t, err)
	assert.Zero(t, flagged)
}

func TestRecurringDetectorRejectsIrregularCadence(t *testing.T) {
	s := newTestStore(t)
	persistTransactions(t, s, []models.Transaction{
		txn("2024-01-01", "-15.99", "Netflix"),
		txn("2024-01-03", "-15.99", "Netflix"),
		txn("2024-05-20", "-15.99", "Netflix"),
	})

	flagged, err := NewRecurringDetector().Apply(s)
	require.NoError(t, err)
	assert.Zero(t, flagged)
}

func TestRecurringDetectorRequiresMinimumOccurrences(t *testing.T) {
	s := newTestStore(t)
	persistTransactions(t, s, []models.Transaction{
		txn("2024-01-15", "-15.99", "Netflix"),
		txn("2024-02-15", "-15.99", "Netflix"),
	})

	flagged, err := NewRecurringDetector().Apply(s)
	require.NoError(t, err)
	assert.Zero(t, flagged)
}
