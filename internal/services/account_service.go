package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ruralpay/expense-tracker/internal/audit"
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/ruralpay/expense-tracker/internal/middleware"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const duplicateAccountMessage = "Account with this name already exists for this user."

type AccountService struct {
	db        *sql.DB
	validator *ValidationHelper
	audit     *audit.Logger
	log       *logrus.Entry
	now       func() time.Time
}

// CreateAccountRequest represents the account creation payload
// @Description Account creation request
type CreateAccountRequest struct {
	AccountName    string             `json:"account_name" validate:"required,max=100" example:"Wallet"`
	AccountType    models.AccountType `json:"account_type" validate:"required,oneof=Cash Bank Credit_Card E_Wallet Other" example:"Cash"`
	InitialBalance decimal.Decimal    `json:"initial_balance" validate:"gte=0" swaggertype:"number" example:"1000.00"`
}

// AccountResponse is returned after an account is created
type AccountResponse struct {
	Message string          `json:"message" example:"Account created successfully."`
	Account *models.Account `json:"account"`
}

// HasAccountsResponse tells the client whether onboarding is complete
type HasAccountsResponse struct {
	HasAccounts bool `json:"hasAccounts"`
	Count       int  `json:"count"`
}

func NewAccountService(db *sql.DB, auditor *audit.Logger, log logrus.FieldLogger) *AccountService {
	return &AccountService{
		db:        db,
		validator: NewValidationHelper(),
		audit:     auditor,
		log:       log.WithField("component", "accounts"),
		now:       time.Now,
	}
}

// CreateAccount creates an account for the authenticated user
// @Summary Create account
// @Description Create a balance-holding account. The running balance starts at the initial balance.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAccountRequest true "Account"
// @Success 201 {object} AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /accounts [post]
func (s *AccountService) CreateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req CreateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.AccountName = strings.TrimSpace(req.AccountName)
	if violations := s.validator.ValidateStruct(&req); violations != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, violations)
		return
	}

	cents, err := models.ToCents(req.InitialBalance)
	if err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, map[string]string{"initial_balance": err.Error()})
		return
	}

	log := s.log.WithField("user_id", userID)

	account := &models.Account{
		UserID:         userID,
		AccountName:    req.AccountName,
		AccountType:    req.AccountType,
		InitialBalance: models.MoneyFromCents(cents),
		CurrentBalance: models.MoneyFromCents(cents),
		CreatedAt:      s.now().UTC(),
	}
	err = s.db.QueryRowContext(r.Context(), `
		INSERT INTO accounts (user_id, account_name, account_type, initial_balance, current_balance, created_at)
		VALUES ($1, $2, $3, $4, $4, $5)
		RETURNING account_id`,
		userID, account.AccountName, string(account.AccountType), cents, account.CreatedAt,
	).Scan(&account.AccountID)
	if err != nil {
		switch database.ClassifyConstraint(err) {
		case database.ConstraintUnique:
			SendErrorResponse(w, duplicateAccountMessage, http.StatusConflict, nil)
		case database.ConstraintCheck:
			SendErrorResponse(w, "Validation failed", http.StatusBadRequest, map[string]string{"account": "violates a data integrity rule"})
		default:
			log.WithError(err).Error("Account creation failed")
			SendErrorResponse(w, "Failed to create account", http.StatusInternalServerError, nil)
		}
		return
	}

	s.audit.LogOperation(userID, account.AccountID, "ACCOUNT_CREATED",
		fmt.Sprintf("%s %s opened with %s", account.AccountType, account.AccountName, account.InitialBalance.StringFixed(2)))

	sendJSON(w, http.StatusCreated, AccountResponse{Message: "Account created successfully.", Account: account})
}

// ListAccounts returns the authenticated user's accounts
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Account
// @Failure 401 {object} ErrorResponse
// @Router /accounts [get]
func (s *AccountService) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	accounts, err := listAccounts(r.Context(), s.db, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to list accounts")
		SendErrorResponse(w, "Failed to fetch accounts", http.StatusInternalServerError, nil)
		return
	}

	sendJSON(w, http.StatusOK, accounts)
}

// HasAccounts reports whether the user has created any account
// @Summary Check account status
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HasAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Router /transactions/has-accounts [get]
func (s *AccountService) HasAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var count int
	err := s.db.QueryRowContext(r.Context(), `SELECT COUNT(*) FROM accounts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to count accounts")
		SendErrorResponse(w, "Failed to check account status.", http.StatusInternalServerError, nil)
		return
	}

	sendJSON(w, http.StatusOK, HasAccountsResponse{HasAccounts: count > 0, Count: count})
}

func listAccounts(ctx context.Context, db *sql.DB, userID int64) ([]models.Account, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT account_id, user_id, account_name, account_type, initial_balance, current_balance, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY account_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		var initial, current int64
		if err := rows.Scan(&a.AccountID, &a.UserID, &a.AccountName, &a.AccountType, &initial, &current, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.InitialBalance = models.MoneyFromCents(initial)
		a.CurrentBalance = models.MoneyFromCents(current)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
