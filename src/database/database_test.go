package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	tables := []string{
		"imported_files", "transactions", "account_balances",
		"investment_accounts", "holdings", "investment_transactions",
		"paystubs", "tax_documents",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO imported_files (file_identity, source_path, document_kind) VALUES ('abc', 'a.txt', 'statement')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening must keep existing data; the schema is CREATE IF NOT EXISTS.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM imported_files`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "nested", "test.db"))
	assert.Error(t, err)
}
