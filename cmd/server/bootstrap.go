package main

import (
	"database/sql"
	"fmt"

	"github.com/ruralpay/expense-tracker/internal/audit"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/ruralpay/expense-tracker/internal/events"
	"github.com/ruralpay/expense-tracker/internal/logging"
	"github.com/ruralpay/expense-tracker/internal/notify"
	"github.com/ruralpay/expense-tracker/internal/reconcile"
	"github.com/sirupsen/logrus"
)

func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, logging.New(cfg.Log.Level, cfg.Log.Format), nil
}

// openDatabase applies pending migrations when asked to and then connects.
func openDatabase(cfg config.DatabaseConfig, log *logrus.Logger, migrate bool) (*sql.DB, error) {
	if migrate {
		if err := database.RunMigrations(cfg); err != nil {
			return nil, err
		}
		log.WithField("driver", cfg.Driver).Info("Database migrations applied")
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	log.WithField("driver", cfg.Driver).Info("Database connection established")
	return db, nil
}

// newPublisher falls back to a no-op publisher when no broker is configured or reachable.
func newPublisher(cfg config.AMQPConfig, log *logrus.Logger) events.Publisher {
	if cfg.URL == "" {
		return events.NopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange, cfg.Queue, logging.Component(log, "events"))
	if err != nil {
		log.WithError(err).Warn("AMQP broker unavailable, transaction events disabled")
		return events.NopPublisher{}
	}
	return publisher
}

func newReconciler(cfg *config.Config, db *sql.DB, log *logrus.Logger) *reconcile.Reconciler {
	var notifier reconcile.Notifier
	if email := notify.NewEmailNotifier(cfg.SMTP, logging.Component(log, "notify")); email.Enabled() {
		notifier = email
	}

	return reconcile.NewReconciler(db,
		logging.Component(log, "reconcile"),
		audit.NewLogger(logging.Component(log, "audit")),
		notifier,
	)
}
