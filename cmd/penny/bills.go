package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennyworth-app/pennyworth/internal/cli"
	"github.com/pennyworth-app/pennyworth/internal/model"
	"github.com/pennyworth-app/pennyworth/internal/service"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Work with the unified obligation feed",
	}
	cmd.AddCommand(billsListCmd())
	cmd.AddCommand(billsSummaryCmd())
	return cmd
}

func billsListCmd() *cobra.Command {
	var (
		fromFlag     string
		toFlag       string
		asOfFlag     string
		statusFlags  []string
		categoryFlag string
		accountFlag  string
		searchFlag   string
		includeDone  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming obligations across every source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			window, err := windowFromFlags(fromFlag, toFlag, asOfFlag, cfg.WindowDays)
			if err != nil {
				return err
			}

			statuses, err := parseStatuses(statusFlags)
			if err != nil {
				return err
			}

			filter := service.ObligationFilter{
				Statuses:         statuses,
				Category:         categoryFlag,
				Account:          accountFlag,
				Search:           searchFlag,
				IncludePaid:      includeDone,
				IncludeCancelled: includeDone,
			}
			// An explicit terminal status in --status implies opting in.
			for _, status := range statuses {
				if status == model.StatusPaid {
					filter.IncludePaid = true
				}
				if status == model.StatusCancelled {
					filter.IncludeCancelled = true
				}
			}

			result, err := buildAggregator(store).FetchAllUpcoming(ctx, window, filter)
			if err != nil {
				return err
			}

			fmt.Print(cli.RenderBillsTable(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "window start (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&toFlag, "to", "", "window end (YYYY-MM-DD, default: start + configured window)")
	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date for status computation (default: today)")
	cmd.Flags().StringSliceVar(&statusFlags, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "filter by category name")
	cmd.Flags().StringVar(&accountFlag, "account", "", "filter by account name")
	cmd.Flags().StringVar(&searchFlag, "search", "", "free-text match on title or description")
	cmd.Flags().BoolVar(&includeDone, "include-settled", false, "include paid and cancelled obligations")
	return cmd
}

func billsSummaryCmd() *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		asOfFlag string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show aggregate statistics for the obligation feed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cfg, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			window, err := windowFromFlags(fromFlag, toFlag, asOfFlag, cfg.WindowDays)
			if err != nil {
				return err
			}

			summary, err := buildAggregator(store).GetSummary(ctx, window, service.ObligationFilter{})
			if err != nil {
				return err
			}

			fmt.Print(cli.RenderSummary(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "window start (YYYY-MM-DD, default: today)")
	cmd.Flags().StringVar(&toFlag, "to", "", "window end (YYYY-MM-DD, default: start + configured window)")
	cmd.Flags().StringVar(&asOfFlag, "as-of", "", "reference date for status computation (default: today)")
	return cmd
}

func windowFromFlags(fromFlag, toFlag, asOfFlag string, windowDays int) (model.Window, error) {
	today := time.Now()

	start, err := parseDateFlag(fromFlag, today)
	if err != nil {
		return model.Window{}, err
	}
	end, err := parseDateFlag(toFlag, start.AddDate(0, 0, windowDays))
	if err != nil {
		return model.Window{}, err
	}
	asOf, err := parseDateFlag(asOfFlag, today)
	if err != nil {
		return model.Window{}, err
	}

	window := model.NewWindow(start, end, asOf)
	if err := window.Validate(); err != nil {
		return model.Window{}, err
	}
	return window, nil
}
