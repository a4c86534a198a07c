package main

import (
	"github.com/ruralpay/expense-tracker/internal/database"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			if err := database.RunMigrations(cfg.Database); err != nil {
				return err
			}

			log.WithField("driver", cfg.Database.Driver).Info("Database is up to date")
			return nil
		},
	}
}
