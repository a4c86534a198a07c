package models

import "time"

type AccountType string

const (
	AccountTypeCash       AccountType = "Cash"
	AccountTypeBank       AccountType = "Bank"
	AccountTypeCreditCard AccountType = "Credit_Card"
	AccountTypeEWallet    AccountType = "E_Wallet"
	AccountTypeOther      AccountType = "Other"
)

// Account is a user-owned balance holder. CurrentBalance changes only through recorded transactions.
// @Description Account with its running balance
type Account struct {
	AccountID      int64       `json:"account_id" example:"1"`
	UserID         int64       `json:"user_id" example:"1"`
	AccountName    string      `json:"account_name" example:"Wallet"`
	AccountType    AccountType `json:"account_type" example:"Cash"`
	InitialBalance Money       `json:"initial_balance" swaggertype:"string" example:"1000.00"`
	CurrentBalance Money       `json:"current_balance" swaggertype:"string" example:"849.50"`
	CreatedAt      time.Time   `json:"created_at"`
}
