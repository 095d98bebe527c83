package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennyworth-app/pennyworth/internal/amortize"
	"github.com/pennyworth-app/pennyworth/internal/cli"
)

func loanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Reducing-balance loan calculators",
	}
	cmd.AddCommand(loanBreakdownCmd())
	cmd.AddCommand(loanTermCmd())
	cmd.AddCommand(loanInterestCmd())
	return cmd
}

func loanBreakdownCmd() *cobra.Command {
	var (
		payment      float64
		balance      float64
		rate         float64
		paymentDate  string
		lastPaidDate string
	)

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Split a payment into principal and interest",
		RunE: func(_ *cobra.Command, _ []string) error {
			var paidAt, lastPaidAt *time.Time
			if paymentDate != "" && lastPaidDate != "" {
				p, err := parseDateFlag(paymentDate, time.Time{})
				if err != nil {
					return err
				}
				l, err := parseDateFlag(lastPaidDate, time.Time{})
				if err != nil {
					return err
				}
				paidAt, lastPaidAt = &p, &l
			}

			breakdown := amortize.PaymentBreakdown(payment, balance, rate, paidAt, lastPaidAt)
			fmt.Printf("Principal:         %.2f\n", breakdown.Principal)
			fmt.Printf("Interest:          %.2f\n", breakdown.Interest)
			fmt.Printf("Remaining balance: %.2f\n", breakdown.RemainingBalance)
			return nil
		},
	}

	cmd.Flags().Float64Var(&payment, "payment", 0, "payment amount")
	cmd.Flags().Float64Var(&balance, "balance", 0, "current balance")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate (percent)")
	cmd.Flags().StringVar(&paymentDate, "payment-date", "", "payment date (YYYY-MM-DD) for day-proportional interest")
	cmd.Flags().StringVar(&lastPaidDate, "last-payment-date", "", "previous payment date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("payment")
	_ = cmd.MarkFlagRequired("balance")
	return cmd
}

func loanTermCmd() *cobra.Command {
	var (
		balance float64
		payment float64
		rate    float64
	)

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Estimate the number of payments remaining",
		RunE: func(_ *cobra.Command, _ []string) error {
			n := amortize.RemainingPayments(balance, payment, rate)
			fmt.Println(cli.FormatTerm(n))
			return nil
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 0, "current balance")
	cmd.Flags().Float64Var(&payment, "payment", 0, "monthly payment amount")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate (percent)")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}

func loanInterestCmd() *cobra.Command {
	var (
		balance float64
		payment float64
		rate    float64
	)

	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Estimate total interest over the remaining term",
		RunE: func(_ *cobra.Command, _ []string) error {
			total := amortize.TotalInterest(balance, payment, rate)
			if math.IsInf(total, 1) {
				fmt.Println(cli.FormatTerm(total))
				return nil
			}
			fmt.Printf("Total interest: %.2f\n", total)
			return nil
		},
	}

	cmd.Flags().Float64Var(&balance, "balance", 0, "current balance")
	cmd.Flags().Float64Var(&payment, "payment", 0, "monthly payment amount")
	cmd.Flags().Float64Var(&rate, "rate", 0, "annual interest rate (percent)")
	_ = cmd.MarkFlagRequired("balance")
	_ = cmd.MarkFlagRequired("payment")
	return cmd
}
