// Package testutil provides migrated SQLite databases and fixtures for integration tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/stretchr/testify/require"
)

// SetupTestDB returns a migrated SQLite database living in the test's temp dir.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	require.NoError(t, database.RunMigrations(cfg))

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func CreateUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO users (username, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING user_id`,
		username, username+"@example.com", "x$y", time.Now().UTC(),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateAccount inserts an account whose current balance equals its initial balance (in cents).
func CreateAccount(t *testing.T, db *sql.DB, userID int64, name string, cents int64) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(
		`INSERT INTO accounts (user_id, account_name, account_type, initial_balance, current_balance, created_at)
		 VALUES ($1, $2, 'Bank', $3, $3, $4) RETURNING account_id`,
		userID, name, cents, time.Now().UTC(),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func Balance(t *testing.T, db *sql.DB, accountID int64) int64 {
	t.Helper()

	var cents int64
	require.NoError(t, db.QueryRow(`SELECT current_balance FROM accounts WHERE account_id = $1`, accountID).Scan(&cents))
	return cents
}

func CategoryID(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	var id int64
	require.NoError(t, db.QueryRow(`SELECT category_id FROM categories WHERE category_name = $1`, name).Scan(&id))
	return id
}

func CountTransactions(t *testing.T, db *sql.DB, kind string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE transaction_type = $1`, kind).Scan(&n))
	return n
}
