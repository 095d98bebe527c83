package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennyworth-app/pennyworth/internal/cli"
	"github.com/pennyworth-app/pennyworth/internal/recurrence"
)

func nextCmd() *cobra.Command {
	var asOfFlag string

	cmd := &cobra.Command{
		Use:   "next <recurring-obligation-id>",
		Short: "Show when a recurring obligation is due next",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid obligation id %q: %w", args[0], err)
			}

			asOf, err := parseDateFlag(asOfFlag, time.Now())
			if err != nil {
				return err
			}

			store, _, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			obligation, err := store.GetRecurringObligationByID(ctx, id)
			if err != nil {
				return err
			}
			if err := obligation.Recurrence.Validate(); err != nil {
				return err
			}

			next, ok := recurrence.NextOccurrence(obligation.Recurrence, asOf)
			if !ok {
				fmt.Println(cli.SubtleStyle.Render(
					fmt.Sprintf("%s: series has ended, no further occurrences", obligation.Title)))
				return nil
			}

			fmt.Printf("%s: next due %s (%.2f %s)\n",
				obligation.Title,
				next.Format("2006-01-02"),
				obligation.ResolveAmount(),
				obligation.Currency)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date (YYYY-MM-DD, default: today)")
	return cmd
}
