package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal expense tracker with an atomic balance ledger
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	envFile string
	rootCmd = &cobra.Command{
		Use:   "server",
		Short: "Expense tracker API server",
		Long: `Expense tracker backend: users record expenses, incomes and transfers
between their own accounts while running balances stay consistent.

Runs the HTTP API when no subcommand is given.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reconcileCmd())
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
