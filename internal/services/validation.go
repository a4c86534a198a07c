package services

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ruralpay/expense-tracker/internal/ledger"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1_048_576 // 1 MB

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a validation helper that shares the ledger's rules for
// decimals and json field names.
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: ledger.NewValidator(),
	}
}

// ValidateStruct validates a struct and returns field violations, or nil when valid.
func (vh *ValidationHelper) ValidateStruct(s any) map[string]string {
	err := vh.validator.Struct(s)
	if err == nil {
		return nil
	}
	if v := ledger.Violations(err); v != nil {
		return v
	}
	return map[string]string{"request": err.Error()}
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Details: details})
}

func sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// decodeJSON reads exactly one JSON object of at most 1 MB into dst. On failure it has
// already written the 400 response.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return false
	}
	return true
}

// WriteLedgerError maps ledger errors onto HTTP responses. Internal error text never
// reaches the client.
func WriteLedgerError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var (
		verr *ledger.ValidationError
		rerr *ledger.ReferentialError
		derr *ledger.DuplicateError
		perr *ledger.PersistenceError
	)

	switch {
	case errors.As(err, &verr):
		SendErrorResponse(w, verr.Message, http.StatusBadRequest, verr.Violations)
	case errors.As(err, &rerr):
		field := rerr.Field
		if field == "" {
			field = rerr.Entity
		}
		SendErrorResponse(w, "Invalid reference", http.StatusBadRequest, map[string]string{field: rerr.Error()})
	case errors.As(err, &derr):
		SendErrorResponse(w, derr.Error(), http.StatusConflict, nil)
	case errors.As(err, &perr):
		log.WithError(err).Error("Ledger unit of work failed")
		SendErrorResponse(w, "Database transaction failed.", http.StatusInternalServerError, nil)
	default:
		log.WithError(err).Error("Unexpected ledger error")
		SendErrorResponse(w, "An Internal Error Occurred", http.StatusInternalServerError, nil)
	}
}
