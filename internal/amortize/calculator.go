// Package amortize implements reducing-balance loan math: splitting a
// payment into principal and interest, estimating the remaining term, and
// totaling the interest paid over the life of a loan.
package amortize

import (
	"math"
	"time"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

// referenceMonthDays is the flat denominator used when accruing interest for
// a partial period. The original books interest against a 30-day month
// regardless of actual month length; kept as-is so figures match historical
// statements.
const referenceMonthDays = 30.0

// Breakdown is the result of splitting a single payment.
type Breakdown struct {
	Principal        float64
	Interest         float64
	RemainingBalance float64
}

// PaymentBreakdown splits a payment against the current balance. When both
// dates are supplied, interest accrues proportionally to the elapsed days
// over a 30-day reference month; otherwise a flat month of interest is used.
// A payment covering the full balance plus accrued interest discharges the
// loan: principal equals the whole balance and the remainder is zero, with
// the interest still reported.
func PaymentBreakdown(payment, balance, annualRate float64, paymentDate, lastPaymentDate *time.Time) Breakdown {
	monthlyRate := MonthlyRate(annualRate)

	interest := balance * monthlyRate
	if paymentDate != nil && lastPaymentDate != nil {
		days := float64(model.DaysUntil(*paymentDate, *lastPaymentDate))
		if days < 0 {
			days = 0
		}
		interest = balance * monthlyRate * (days / referenceMonthDays)
	}

	principal := payment - interest
	if principal < 0 {
		principal = 0
	}
	if principal > balance {
		principal = balance
	}

	return Breakdown{
		Principal:        principal,
		Interest:         interest,
		RemainingBalance: math.Max(0, balance-principal),
	}
}

// RemainingPayments estimates how many monthly payments remain before the
// balance reaches zero. Returns +Inf when the payment never outruns the
// interest accruing each month, meaning the loan will never pay off at this
// rate and payment. Callers must render that case distinctly, never as a
// numeric term.
func RemainingPayments(balance, monthlyPayment, annualRate float64) float64 {
	if balance <= 0 {
		return 0
	}
	if monthlyPayment <= 0 {
		return math.Inf(1)
	}

	r := MonthlyRate(annualRate)
	if r == 0 {
		return math.Ceil(balance / monthlyPayment)
	}

	// Closed-form reducing-balance term: n = -ln(1 - B*r/P) / ln(1 + r).
	ratio := 1 - balance*r/monthlyPayment
	if ratio <= 0 {
		return math.Inf(1)
	}
	return math.Ceil(-math.Log(ratio) / math.Log(1+r))
}

// TotalInterest estimates the total interest paid over the remaining life of
// the loan, propagating +Inf from RemainingPayments.
func TotalInterest(balance, monthlyPayment, annualRate float64) float64 {
	n := RemainingPayments(balance, monthlyPayment, annualRate)
	if math.IsInf(n, 1) {
		return math.Inf(1)
	}
	return n*monthlyPayment - balance
}

// MonthlyRate converts an annual percentage rate to a monthly fraction.
func MonthlyRate(annualRate float64) float64 {
	if annualRate <= 0 {
		return 0
	}
	return annualRate / 12 / 100
}
