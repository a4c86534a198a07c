package database

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/lib/pq"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		driver, dsn, err := DSN(config.DatabaseConfig{
			Driver: DriverPostgres, Host: "db", Port: "5432", User: "app", Password: "p@ss", Name: "expenses", SSLMode: "disable",
		})
		require.NoError(t, err)
		assert.Equal(t, DriverPostgres, driver)
		assert.Equal(t, "postgres://app:p%40ss@db:5432/expenses?sslmode=disable", dsn)
	})

	t.Run("sqlite", func(t *testing.T) {
		driver, dsn, err := DSN(config.DatabaseConfig{Driver: DriverSQLite, Path: "data/app.db"})
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, driver)
		assert.Contains(t, dsn, "file:data/app.db?")
		assert.Contains(t, dsn, "_pragma=foreign_keys%281%29")
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := DSN(config.DatabaseConfig{Driver: "mysql"})
		assert.Error(t, err)
	})
}

func TestClassifyConstraint_Postgres(t *testing.T) {
	tests := []struct {
		code string
		want Constraint
	}{
		{"23505", ConstraintUnique},
		{"23503", ConstraintForeignKey},
		{"23514", ConstraintCheck},
		{"40001", ConstraintNone},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := fmt.Errorf("insert: %w", &pq.Error{Code: pq.ErrorCode(tt.code)})
			assert.Equal(t, tt.want, ClassifyConstraint(err))
		})
	}

	assert.Equal(t, ConstraintNone, ClassifyConstraint(nil))
	assert.Equal(t, ConstraintNone, ClassifyConstraint(errors.New("plain")))
}

func TestMigrationsAndSQLiteConstraints(t *testing.T) {
	cfg := config.DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "constraints.db")}
	require.NoError(t, RunMigrations(cfg))
	require.NoError(t, RunMigrations(cfg), "re-running must be a no-op")

	db, err := Open(cfg)
	require.NoError(t, err)
	defer db.Close()

	var categories int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categories))
	assert.Equal(t, 14, categories)

	var userID int64
	require.NoError(t, db.QueryRow(
		`INSERT INTO users (username, email, password_hash) VALUES ('a', 'a@example.com', 'x') RETURNING user_id`,
	).Scan(&userID))

	_, err = db.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('a', 'b@example.com', 'x')`)
	assert.Equal(t, ConstraintUnique, ClassifyConstraint(err))

	_, err = db.Exec(`INSERT INTO accounts (user_id, account_name, account_type, initial_balance, current_balance) VALUES (999, 'Ghost', 'Cash', 0, 0)`)
	assert.Equal(t, ConstraintForeignKey, ClassifyConstraint(err))

	_, err = db.Exec(`INSERT INTO accounts (user_id, account_name, account_type, initial_balance, current_balance) VALUES ($1, 'Gold', 'Gold', 0, 0)`, userID)
	assert.Equal(t, ConstraintCheck, ClassifyConstraint(err))
}
