package reconcile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/ruralpay/expense-tracker/internal/notify"
	"github.com/sirupsen/logrus"
)

type Auditor interface {
	LogOperation(userID, accountID int64, operation, details string)
}

type Notifier interface {
	SendDriftReport(drifts []notify.BalanceDrift) error
}

// Reconciler checks that every running balance equals the initial balance plus the effect of
// the account's recorded transactions. It never writes.
type Reconciler struct {
	db       *sql.DB
	log      logrus.FieldLogger
	auditor  Auditor
	notifier Notifier
}

func NewReconciler(db *sql.DB, log logrus.FieldLogger, auditor Auditor, notifier Notifier) *Reconciler {
	return &Reconciler{db: db, log: log, auditor: auditor, notifier: notifier}
}

type accountRef struct {
	id     int64
	userID int64
	name   string
}

// Balance and transaction effect are read in one statement so both come from the same snapshot.
const balanceCheckQuery = `
	SELECT a.current_balance,
	       a.initial_balance + COALESCE((
	           SELECT SUM(CASE
	               WHEN t.transaction_type = 'Income' AND t.account_id = a.account_id THEN t.amount
	               WHEN t.transaction_type = 'Expense' AND t.account_id = a.account_id THEN -t.amount
	               WHEN t.transaction_type = 'Transfer_Out' AND t.account_id = a.account_id THEN -t.amount
	               WHEN t.transaction_type = 'Transfer_Out' AND t.to_account_id = a.account_id THEN t.amount
	               ELSE 0 END)
	           FROM transactions t
	           WHERE t.account_id = a.account_id OR t.to_account_id = a.account_id
	       ), 0)
	FROM accounts a
	WHERE a.account_id = $1`

// Run checks every account and reports the ones that drifted. progress may be nil.
func (r *Reconciler) Run(ctx context.Context, progress func(done, total int)) ([]notify.BalanceDrift, error) {
	accounts, err := r.listAccounts(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []notify.BalanceDrift
	for i, acc := range accounts {
		var actual, expected int64
		err := r.db.QueryRowContext(ctx, balanceCheckQuery, acc.id).Scan(&actual, &expected)
		if err != nil {
			return nil, fmt.Errorf("check account %d: %w", acc.id, err)
		}

		if actual != expected {
			drift := notify.BalanceDrift{
				AccountID:   acc.id,
				UserID:      acc.userID,
				AccountName: acc.name,
				Expected:    expected,
				Actual:      actual,
			}
			drifts = append(drifts, drift)
			r.report(drift)
		}

		if progress != nil {
			progress(i+1, len(accounts))
		}
	}

	r.log.WithFields(logrus.Fields{
		"accounts": len(accounts),
		"drifted":  len(drifts),
	}).Info("Balance reconciliation finished")

	if len(drifts) > 0 && r.notifier != nil {
		if err := r.notifier.SendDriftReport(drifts); err != nil {
			r.log.WithError(err).Warn("Drift report not delivered")
		}
	}

	return drifts, nil
}

func (r *Reconciler) listAccounts(ctx context.Context) ([]accountRef, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT account_id, user_id, account_name FROM accounts ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []accountRef
	for rows.Next() {
		var acc accountRef
		if err := rows.Scan(&acc.id, &acc.userID, &acc.name); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *Reconciler) report(d notify.BalanceDrift) {
	details := fmt.Sprintf("balance %s, expected %s",
		models.FromCents(d.Actual).StringFixed(2), models.FromCents(d.Expected).StringFixed(2))

	r.log.WithFields(logrus.Fields{
		"account_id": d.AccountID,
		"user_id":    d.UserID,
		"actual":     d.Actual,
		"expected":   d.Expected,
	}).Warn("Balance drift detected")

	if r.auditor != nil {
		r.auditor.LogOperation(d.UserID, d.AccountID, "BALANCE_DRIFT", details)
	}
}

// Schedule runs the reconciler on a cron spec ("@every 1h", "0 3 * * *"). The caller stops
// the returned scheduler.
func (r *Reconciler) Schedule(spec string, timeout time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := r.Run(ctx, nil); err != nil {
			r.log.WithError(err).Error("Scheduled reconciliation failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", spec, err)
	}

	c.Start()
	return c, nil
}
