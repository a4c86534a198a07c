package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/sirupsen/logrus"
)

// BalanceDrift is one account whose running balance disagrees with its transactions.
type BalanceDrift struct {
	AccountID   int64
	UserID      int64
	AccountName string
	Expected    int64
	Actual      int64
}

// EmailNotifier sends operational reports over SMTP.
type EmailNotifier struct {
	cfg  config.SMTPConfig
	log  logrus.FieldLogger
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewEmailNotifier(cfg config.SMTPConfig, log logrus.FieldLogger) *EmailNotifier {
	return &EmailNotifier{
		cfg: cfg,
		log: log,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (n *EmailNotifier) Enabled() bool {
	return n.cfg.Host != "" && len(n.cfg.NotifyTo) > 0
}

func (n *EmailNotifier) SendDriftReport(drifts []BalanceDrift) error {
	if !n.Enabled() || len(drifts) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = n.cfg.NotifyTo
	e.Subject = fmt.Sprintf("Balance reconciliation: %d account(s) drifted", len(drifts))

	var body strings.Builder
	body.WriteString("The following account balances do not match their recorded transactions:\n\n")
	for _, d := range drifts {
		fmt.Fprintf(&body, "- account %d (%s, user %d): balance %s, expected %s\n",
			d.AccountID, d.AccountName, d.UserID,
			models.FromCents(d.Actual).StringFixed(2), models.FromCents(d.Expected).StringFixed(2))
	}
	body.WriteString("\nNo data was changed. Investigate before correcting balances manually.\n")
	e.Text = []byte(body.String())

	addr := fmt.Sprintf("%s:%s", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	if err := n.send(e, addr, auth); err != nil {
		n.log.WithError(err).Error("Failed to send drift report")
		return fmt.Errorf("failed to send drift report: %w", err)
	}

	n.log.WithField("recipients", len(e.To)).Info("Drift report sent")
	return nil
}
