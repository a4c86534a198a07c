package main

import (
	"errors"
	"fmt"

	"github.com/ruralpay/expense-tracker/internal/models"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var errDriftFound = errors.New("balance drift detected")

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Check every running balance against its recorded transactions",
		Long: `Recomputes each account's balance from its initial balance and recorded
transactions and compares it with the stored running balance.

Exits with status 1 when any account has drifted. Nothing is modified.`,
		RunE: runReconcile,
	}
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg.Database, log, false)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.ErrOrStderr()
	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(out),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Reconciling accounts"),
				progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
			)
		}
		if err := bar.Set(done); err != nil {
			log.WithError(err).Debug("Failed to update progress bar")
		}
	}

	drifts, err := newReconciler(cfg, db, log).Run(cmd.Context(), progress)
	if err != nil {
		return err
	}

	if len(drifts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "All balances reconcile.")
		return nil
	}

	for _, d := range drifts {
		fmt.Fprintf(cmd.OutOrStdout(), "account %d (%s, user %d): balance %s, expected %s\n",
			d.AccountID, d.AccountName, d.UserID,
			models.FromCents(d.Actual).StringFixed(2), models.FromCents(d.Expected).StringFixed(2))
	}
	return fmt.Errorf("%w in %d account(s)", errDriftFound, len(drifts))
}
