package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ruralpay/expense-tracker/internal/audit"
	"github.com/ruralpay/expense-tracker/internal/events"
	"github.com/ruralpay/expense-tracker/internal/ledger"
	"github.com/ruralpay/expense-tracker/internal/middleware"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Recorder is the ledger surface the HTTP layer writes through.
type Recorder interface {
	RecordExpense(ctx context.Context, userID int64, req ledger.EntryRequest) (*models.Transaction, error)
	RecordIncome(ctx context.Context, userID int64, req ledger.EntryRequest) (*models.Transaction, error)
	RecordTransfer(ctx context.Context, userID int64, req ledger.TransferRequest) (*models.Transaction, error)
}

type TransactionService struct {
	db        *sql.DB
	ledger    Recorder
	audit     *audit.Logger
	publisher events.Publisher
	log       *logrus.Entry
}

// TransactionResponse is returned after a transaction is recorded
type TransactionResponse struct {
	Message     string              `json:"message" example:"Expense transaction recorded successfully."`
	Transaction *models.Transaction `json:"transaction"`
}

type Pagination struct {
	TotalItems  int `json:"total_items" example:"42"`
	TotalPages  int `json:"total_pages" example:"5"`
	CurrentPage int `json:"current_page" example:"1"`
	Limit       int `json:"limit" example:"10"`
}

// DashboardResponse aggregates what the home screen renders
type DashboardResponse struct {
	User         *models.User             `json:"user"`
	Accounts     []models.Account         `json:"accounts"`
	Transactions []models.TransactionView `json:"transactions"`
	Pagination   Pagination               `json:"pagination"`
}

func NewTransactionService(db *sql.DB, recorder Recorder, auditor *audit.Logger, publisher events.Publisher, log logrus.FieldLogger) *TransactionService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TransactionService{
		db:        db,
		ledger:    recorder,
		audit:     auditor,
		publisher: publisher,
		log:       log.WithField("component", "ledger-api"),
	}
}

// RecordExpense records an expense against one of the user's accounts
// @Summary Record expense
// @Description Stores an Expense and decrements the account balance in one unit of work
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ledger.EntryRequest true "Expense"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/expense [post]
func (ts *TransactionService) RecordExpense(w http.ResponseWriter, r *http.Request) {
	ts.recordEntry(w, r, ts.ledger.RecordExpense, "Expense transaction recorded successfully.")
}

// RecordIncome records an income against one of the user's accounts
// @Summary Record income
// @Description Stores an Income and increments the account balance in one unit of work
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ledger.EntryRequest true "Income"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/income [post]
func (ts *TransactionService) RecordIncome(w http.ResponseWriter, r *http.Request) {
	ts.recordEntry(w, r, ts.ledger.RecordIncome, "Income transaction recorded successfully.")
}

type entryRecorder func(ctx context.Context, userID int64, req ledger.EntryRequest) (*models.Transaction, error)

func (ts *TransactionService) recordEntry(w http.ResponseWriter, r *http.Request, record entryRecorder, message string) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req ledger.EntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	txn, err := record(r.Context(), userID, req)
	if err != nil {
		ts.logFailure(userID, req.AccountID, err)
		WriteLedgerError(w, ts.log.WithField("user_id", userID), err)
		return
	}

	ts.afterCommit(r.Context(), txn)
	sendJSON(w, http.StatusCreated, TransactionResponse{Message: message, Transaction: txn})
}

// RecordTransfer moves funds between two of the user's accounts
// @Summary Transfer funds
// @Description Debits the source and credits the destination in one unit of work
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ledger.TransferRequest true "Transfer"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/transfer [post]
func (ts *TransactionService) RecordTransfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req ledger.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	txn, err := ts.ledger.RecordTransfer(r.Context(), userID, req)
	if err != nil {
		ts.logFailure(userID, req.AccountID, err)
		WriteLedgerError(w, ts.log.WithField("user_id", userID), err)
		return
	}

	ts.afterCommit(r.Context(), txn)
	sendJSON(w, http.StatusCreated, TransactionResponse{Message: "Funds transferred successfully.", Transaction: txn})
}

// afterCommit audits and announces a committed transaction. Neither step affects the response.
func (ts *TransactionService) afterCommit(ctx context.Context, txn *models.Transaction) {
	var toAccountID int64
	if txn.ToAccountID != nil {
		toAccountID = *txn.ToAccountID
	}
	ts.audit.LogTransaction(txn.UserID, txn.TransactionID, txn.AccountID, toAccountID, string(txn.TransactionType), txn.Amount.Cents())

	if err := ts.publisher.PublishTransactionRecorded(ctx, events.NewTransactionRecorded(txn)); err != nil {
		ts.log.WithError(err).WithField("transaction_id", txn.TransactionID).Warn("Failed to publish transaction event")
	}
}

func (ts *TransactionService) logFailure(userID, accountID int64, err error) {
	var verr *ledger.ValidationError
	if errors.As(err, &verr) {
		return
	}
	ts.audit.LogError(userID, accountID, "RECORD_TRANSACTION", err)
}

// GetDashboard returns the user, their accounts and a page of transactions
// @Summary Dashboard
// @Description Accounts with running balances and transactions newest first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (1-100)" default(10)
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/dashboard [get]
func (ts *TransactionService) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	page, limit := pageParams(r)
	log := ts.log.WithField("user_id", userID)

	user, err := fetchUser(r, ts.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to fetch user")
		SendErrorResponse(w, "Failed to fetch dashboard data.", http.StatusInternalServerError, nil)
		return
	}

	accounts, err := listAccounts(r.Context(), ts.db, userID)
	if err != nil {
		log.WithError(err).Error("Failed to list accounts")
		SendErrorResponse(w, "Failed to fetch dashboard data.", http.StatusInternalServerError, nil)
		return
	}

	var total int
	if err := ts.db.QueryRowContext(r.Context(),
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		log.WithError(err).Error("Failed to count transactions")
		SendErrorResponse(w, "Failed to fetch dashboard data.", http.StatusInternalServerError, nil)
		return
	}

	transactions, err := ts.fetchTransactions(r.Context(), userID, limit, (page-1)*limit)
	if err != nil {
		log.WithError(err).Error("Failed to fetch transactions")
		SendErrorResponse(w, "Failed to fetch dashboard data.", http.StatusInternalServerError, nil)
		return
	}

	sendJSON(w, http.StatusOK, DashboardResponse{
		User:         user,
		Accounts:     accounts,
		Transactions: transactions,
		Pagination: Pagination{
			TotalItems:  total,
			TotalPages:  (total + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		},
	})
}

func pageParams(r *http.Request) (page, limit int) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(r.URL.Query().Get("limit"))
	switch {
	case err != nil:
		limit = defaultPageSize
	case limit < 1:
		limit = 1
	case limit > maxPageSize:
		limit = maxPageSize
	}
	return page, limit
}

func (ts *TransactionService) fetchTransactions(ctx context.Context, userID int64, limit, offset int) ([]models.TransactionView, error) {
	rows, err := ts.db.QueryContext(ctx, `
		SELECT t.transaction_id, t.user_id, t.account_id, t.to_account_id, t.category_id,
		       t.transaction_type, t.amount, t.transaction_date, t.description,
		       a.account_name, ta.account_name, c.category_name
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		LEFT JOIN accounts ta ON ta.account_id = t.to_account_id
		LEFT JOIN categories c ON c.category_id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.transaction_date DESC, t.transaction_id DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.TransactionView{}
	for rows.Next() {
		var (
			v                        models.TransactionView
			cents                    int64
			toAccountID, categoryID  sql.NullInt64
			description, toName, cat sql.NullString
		)
		if err := rows.Scan(&v.TransactionID, &v.UserID, &v.AccountID, &toAccountID, &categoryID,
			&v.TransactionType, &cents, &v.TransactionDate, &description,
			&v.AccountName, &toName, &cat); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		v.Amount = models.MoneyFromCents(cents)
		v.ToAccountID = nullInt64(toAccountID)
		v.CategoryID = nullInt64(categoryID)
		v.Description = nullString(description)
		v.ToAccountName = nullString(toName)
		v.CategoryName = nullString(cat)
		transactions = append(transactions, v)
	}
	return transactions, rows.Err()
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
