package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const (
	SameAccountMessage         = "Cannot transfer to the same account."
	DefaultTransferDescription = "Fund Transfer"
)

// TxBeginner is the persistence handle the engine records through. *sql.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// EntryRequest is the payload for expenses and incomes.
type EntryRequest struct {
	AccountID   int64           `json:"account_id" validate:"required,gt=0" example:"1"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0" example:"6"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0" swaggertype:"number" example:"150.50"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=255" example:"Lunch"`
}

type TransferRequest struct {
	AccountID   int64           `json:"account_id" validate:"required,gt=0" example:"1"`
	ToAccountID int64           `json:"to_account_id" validate:"required,gt=0" example:"2"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0" swaggertype:"number" example:"200.00"`
	Description *string         `json:"description,omitempty" validate:"omitempty,max=255" example:"Savings"`
}

// Engine records transactions together with their balance effects in one database transaction.
type Engine struct {
	db       TxBeginner
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(db TxBeginner, opts ...Option) *Engine {
	e := &Engine{
		db:       db,
		validate: NewValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// balanceDelta is a signed change to one account's running balance.
type balanceDelta struct {
	accountID int64
	field     string
	cents     int64
}

// RecordExpense stores an Expense and decrements the account balance by the amount.
func (e *Engine) RecordExpense(ctx context.Context, userID int64, req EntryRequest) (*models.Transaction, error) {
	return e.recordEntry(ctx, userID, models.TransactionTypeExpense, models.CategoryTypeExpense, req)
}

// RecordIncome stores an Income and increments the account balance by the amount.
func (e *Engine) RecordIncome(ctx context.Context, userID int64, req EntryRequest) (*models.Transaction, error) {
	return e.recordEntry(ctx, userID, models.TransactionTypeIncome, models.CategoryTypeIncome, req)
}

func (e *Engine) recordEntry(ctx context.Context, userID int64, kind models.TransactionType, want models.CategoryType, req EntryRequest) (*models.Transaction, error) {
	cents, err := e.validateEntry(userID, req)
	if err != nil {
		return nil, err
	}

	delta := cents
	if kind == models.TransactionTypeExpense {
		delta = -cents
	}

	categoryID := req.CategoryID
	txn := e.newTransaction(userID, kind, req.AccountID, nil, &categoryID, cents, req.Description)

	err = e.inTx(ctx, "record "+strings.ToLower(string(kind)), func(tx *sql.Tx) error {
		if err := checkCategory(ctx, tx, req.CategoryID, want); err != nil {
			return err
		}
		if err := applyDelta(ctx, tx, userID, balanceDelta{req.AccountID, "account_id", delta}); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, txn, cents)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// RecordTransfer stores a single Transfer_Out row referencing both accounts, debits the
// source and credits the destination.
func (e *Engine) RecordTransfer(ctx context.Context, userID int64, req TransferRequest) (*models.Transaction, error) {
	cents, err := e.validateTransfer(userID, req)
	if err != nil {
		return nil, err
	}

	description := req.Description
	if description == nil || strings.TrimSpace(*description) == "" {
		d := DefaultTransferDescription
		description = &d
	}

	toAccountID := req.ToAccountID
	txn := e.newTransaction(userID, models.TransactionTypeTransferOut, req.AccountID, &toAccountID, nil, cents, description)

	// Apply in ascending account order so concurrent transfers lock rows consistently.
	first := balanceDelta{req.AccountID, "account_id", -cents}
	second := balanceDelta{req.ToAccountID, "to_account_id", cents}
	if second.accountID < first.accountID {
		first, second = second, first
	}

	err = e.inTx(ctx, "record transfer", func(tx *sql.Tx) error {
		if err := applyDelta(ctx, tx, userID, first); err != nil {
			return err
		}
		if err := applyDelta(ctx, tx, userID, second); err != nil {
			return err
		}
		return insertTransaction(ctx, tx, txn, cents)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (e *Engine) newTransaction(userID int64, kind models.TransactionType, accountID int64, toAccountID, categoryID *int64, cents int64, description *string) *models.Transaction {
	return &models.Transaction{
		UserID:          userID,
		AccountID:       accountID,
		ToAccountID:     toAccountID,
		CategoryID:      categoryID,
		TransactionType: kind,
		Amount:          models.MoneyFromCents(cents),
		TransactionDate: e.now().UTC(),
		Description:     description,
	}
}

// inTx runs fn inside one database transaction bound to ctx. Any error rolls everything back.
func (e *Engine) inTx(ctx context.Context, op string, fn func(*sql.Tx) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return classify(op, err)
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

func classify(op string, err error) error {
	var verr *ValidationError
	var rerr *ReferentialError
	if errors.As(err, &verr) || errors.As(err, &rerr) {
		return err
	}

	switch database.ClassifyConstraint(err) {
	case database.ConstraintForeignKey:
		return &ReferentialError{Entity: "account", Field: "account_id"}
	case database.ConstraintCheck:
		return &ValidationError{
			Message:    DefaultValidationMessage,
			Violations: map[string]string{"transaction": "violates a data integrity rule"},
		}
	}
	return &PersistenceError{Op: op, Err: err}
}

func checkCategory(ctx context.Context, tx *sql.Tx, categoryID int64, want models.CategoryType) error {
	var got models.CategoryType
	err := tx.QueryRowContext(ctx,
		`SELECT category_type FROM categories WHERE category_id = $1`, categoryID).Scan(&got)
	if errors.Is(err, sql.ErrNoRows) {
		return &ReferentialError{Entity: "category", Field: "category_id", ID: categoryID}
	}
	if err != nil {
		return fmt.Errorf("load category %d: %w", categoryID, err)
	}
	if got != want {
		return newValidationError("category_id", fmt.Sprintf("category %d is not an %s category", categoryID, want))
	}
	return nil
}

// applyDelta changes the running balance relative to its committed value so concurrent
// deltas on one account serialize in the store instead of overwriting each other.
func applyDelta(ctx context.Context, tx *sql.Tx, userID int64, d balanceDelta) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET current_balance = current_balance + $1
		WHERE account_id = $2 AND user_id = $3`,
		d.cents, d.accountID, userID)
	if database.ClassifyConstraint(err) == database.ConstraintCheck {
		return newValidationError("amount", fmt.Sprintf("would take the balance of account %d out of range", d.accountID))
	}
	if err != nil {
		return fmt.Errorf("update balance of account %d: %w", d.accountID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance of account %d: %w", d.accountID, err)
	}
	if rows == 0 {
		return &ReferentialError{Entity: "account", Field: d.field, ID: d.accountID}
	}
	return nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, txn *models.Transaction, cents int64) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, account_id, to_account_id, category_id, transaction_type, amount, transaction_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING transaction_id`,
		txn.UserID, txn.AccountID, nullableInt64(txn.ToAccountID), nullableInt64(txn.CategoryID),
		string(txn.TransactionType), cents, txn.TransactionDate, nullableString(txn.Description),
	).Scan(&txn.TransactionID)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
