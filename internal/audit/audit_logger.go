package audit

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Event struct {
	Timestamp     time.Time
	EventType     string
	UserID        int64
	TransactionID int64
	AccountID     int64
	ToAccountID   int64
	AmountCents   int64
	Status        string
	Details       map[string]string
}

// Logger writes one structured audit line per ledger event.
type Logger struct {
	log logrus.FieldLogger
	now func() time.Time
}

func NewLogger(log logrus.FieldLogger) *Logger {
	return &Logger{log: log, now: time.Now}
}

func (a *Logger) LogTransaction(userID, transactionID, accountID, toAccountID int64, kind string, amountCents int64) {
	a.write(Event{
		EventType:     kind,
		UserID:        userID,
		TransactionID: transactionID,
		AccountID:     accountID,
		ToAccountID:   toAccountID,
		AmountCents:   amountCents,
		Status:        "SUCCESS",
	})
}

func (a *Logger) LogError(userID, accountID int64, operation string, err error) {
	a.write(Event{
		EventType: operation,
		UserID:    userID,
		AccountID: accountID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *Logger) LogOperation(userID, accountID int64, operation, details string) {
	a.write(Event{
		EventType: operation,
		UserID:    userID,
		AccountID: accountID,
		Status:    "SUCCESS",
		Details:   map[string]string{"details": details},
	})
}

func (a *Logger) write(event Event) {
	event.Timestamp = a.now().UTC()

	fields := logrus.Fields{
		"audit":      true,
		"event_type": event.EventType,
		"status":     event.Status,
		"event_time": event.Timestamp.Format(time.RFC3339Nano),
	}
	if event.UserID != 0 {
		fields["user_id"] = event.UserID
	}
	if event.TransactionID != 0 {
		fields["transaction_id"] = event.TransactionID
	}
	if event.AccountID != 0 {
		fields["account_id"] = event.AccountID
	}
	if event.ToAccountID != 0 {
		fields["to_account_id"] = event.ToAccountID
	}
	if event.AmountCents != 0 {
		fields["amount_cents"] = event.AmountCents
	}
	for k, v := range event.Details {
		fields[k] = v
	}

	entry := a.log.WithFields(fields)
	if event.Status == "FAILED" {
		entry.Warn("AUDIT")
		return
	}
	entry.Info("AUDIT")
}
