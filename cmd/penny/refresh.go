package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennyworth-app/pennyworth/internal/cli"
	"github.com/pennyworth-app/pennyworth/internal/engine"
)

func refreshCmd() *cobra.Command {
	var asOfFlag string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute cached next due dates for recurring obligations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			asOf, err := parseDateFlag(asOfFlag, time.Now())
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			updated, err := engine.RefreshNextDueDates(ctx, store, asOf)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("refreshed next due dates for %d obligations", updated)))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date (YYYY-MM-DD, default: today)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Println(cli.FormatSuccess("database is up to date"))
			return nil
		},
	}
}
