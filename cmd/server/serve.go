package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ruralpay/expense-tracker/docs"
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/ruralpay/expense-tracker/internal/handlers"
	"github.com/ruralpay/expense-tracker/internal/logging"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout  = 30 * time.Second
	reconcileTimeout = 5 * time.Minute
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.Database, log, cfg.Database.AutoMigrate)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := database.InitRedis(cfg.Redis, logging.Component(log, "redis"))
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := newPublisher(cfg.AMQP, log)
	defer publisher.Close()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
	docs.SwaggerInfo.BasePath = "/api/v1"

	router := handlers.NewRouter(handlers.Deps{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Publisher: publisher,
		Logger:    log,
	})

	if cfg.Reconcile.Schedule != "" {
		scheduler, err := newReconciler(cfg, db, log).Schedule(cfg.Reconcile.Schedule, reconcileTimeout)
		if err != nil {
			return err
		}
		defer func() { <-scheduler.Stop().Done() }()
		log.WithField("schedule", cfg.Reconcile.Schedule).Info("Balance reconciliation scheduled")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-cmd.Context().Done():
	}

	log.Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("Server stopped")
	return nil
}
