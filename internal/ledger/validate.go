package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal amounts and reports json field names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Violations flattens validator errors into field -> message.
func Violations(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
	}
	return out
}

func (e *Engine) checkStruct(s any) error {
	if err := e.validate.Struct(s); err != nil {
		if v := Violations(err); v != nil {
			return &ValidationError{Message: DefaultValidationMessage, Violations: v}
		}
		return err
	}
	return nil
}

func toCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, newValidationError("amount", "must be a positive number")
	}
	cents, err := models.ToCents(amount)
	if err != nil {
		return 0, newValidationError("amount", err.Error())
	}
	return cents, nil
}

func (e *Engine) validateEntry(userID int64, req EntryRequest) (int64, error) {
	if userID <= 0 {
		return 0, newValidationError("user_id", "must be a positive integer")
	}
	if err := e.checkStruct(req); err != nil {
		return 0, err
	}
	return toCents(req.Amount)
}

func (e *Engine) validateTransfer(userID int64, req TransferRequest) (int64, error) {
	if userID <= 0 {
		return 0, newValidationError("user_id", "must be a positive integer")
	}
	if err := e.checkStruct(req); err != nil {
		return 0, err
	}
	if req.AccountID == req.ToAccountID {
		return 0, &ValidationError{
			Message:    SameAccountMessage,
			Violations: map[string]string{"to_account_id": "must differ from account_id"},
		}
	}
	return toCents(req.Amount)
}
