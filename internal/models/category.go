package models

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "Income"
	CategoryTypeExpense CategoryType = "Expense"
)

// @Description Transaction category
type Category struct {
	CategoryID   int64        `json:"category_id" example:"6"`
	CategoryName string       `json:"category_name" example:"Food"`
	CategoryType CategoryType `json:"category_type" example:"Expense"`
}
