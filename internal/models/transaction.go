package models

import "time"

type TransactionType string

const (
	TransactionTypeExpense     TransactionType = "Expense"
	TransactionTypeIncome      TransactionType = "Income"
	TransactionTypeTransferOut TransactionType = "Transfer_Out"
)

// Transaction is a write-once ledger record. Transfers carry ToAccountID and no category.
// @Description Recorded transaction
type Transaction struct {
	TransactionID   int64           `json:"transaction_id" example:"42"`
	UserID          int64           `json:"user_id" example:"1"`
	AccountID       int64           `json:"account_id" example:"1"`
	ToAccountID     *int64          `json:"to_account_id,omitempty" example:"2"`
	CategoryID      *int64          `json:"category_id,omitempty" example:"6"`
	TransactionType TransactionType `json:"transaction_type" example:"Expense"`
	Amount          Money           `json:"amount" swaggertype:"string" example:"150.50"`
	TransactionDate time.Time       `json:"transaction_date"`
	Description     *string         `json:"description,omitempty" example:"Lunch"`
}

// TransactionView is a dashboard row with the referenced names resolved.
// @Description Dashboard transaction row
type TransactionView struct {
	Transaction
	AccountName   string  `json:"account_name" example:"Wallet"`
	ToAccountName *string `json:"to_account_name,omitempty" example:"Savings"`
	CategoryName  *string `json:"category_name,omitempty" example:"Food"`
}
