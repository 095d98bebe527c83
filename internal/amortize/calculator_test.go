package amortize

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pennyworth-app/pennyworth/internal/model"
)

func TestPaymentBreakdownFlatMonth(t *testing.T) {
	// 8.4% annual -> 0.7% monthly on 4,200,000 = 29,400 interest.
	breakdown := PaymentBreakdown(35000, 4200000, 8.4, nil, nil)

	assert.InDelta(t, 29400, breakdown.Interest, 0.01)
	assert.InDelta(t, 5600, breakdown.Principal, 0.01)
	assert.InDelta(t, 4194400, breakdown.RemainingBalance, 0.01)
	assert.InDelta(t, 35000, breakdown.Principal+breakdown.Interest, 0.01)
}

func TestPaymentBreakdownDayProportional(t *testing.T) {
	last := model.Date(2025, time.June, 1)
	paid := model.Date(2025, time.June, 16)

	// 15 elapsed days over the 30-day reference month halves the interest.
	breakdown := PaymentBreakdown(35000, 4200000, 8.4, &paid, &last)

	assert.InDelta(t, 14700, breakdown.Interest, 0.01)
	assert.InDelta(t, 20300, breakdown.Principal, 0.01)
	assert.InDelta(t, 4179700, breakdown.RemainingBalance, 0.01)
}

func TestPaymentBreakdownZeroRate(t *testing.T) {
	breakdown := PaymentBreakdown(500, 2000, 0, nil, nil)

	assert.Zero(t, breakdown.Interest)
	assert.InDelta(t, 500, breakdown.Principal, 0.01)
	assert.InDelta(t, 1500, breakdown.RemainingBalance, 0.01)
}

func TestPaymentBreakdownFullDischarge(t *testing.T) {
	// Payment covers balance plus accrued interest: principal equals the
	// whole balance and interest is still reported.
	breakdown := PaymentBreakdown(1200, 1000, 12, nil, nil)

	assert.InDelta(t, 10, breakdown.Interest, 0.01)
	assert.InDelta(t, 1000, breakdown.Principal, 0.01)
	assert.Zero(t, breakdown.RemainingBalance)
}

func TestPaymentBreakdownPaymentBelowInterest(t *testing.T) {
	// Payment smaller than accrued interest reduces nothing.
	breakdown := PaymentBreakdown(500, 100000, 12, nil, nil)

	assert.InDelta(t, 1000, breakdown.Interest, 0.01)
	assert.Zero(t, breakdown.Principal)
	assert.InDelta(t, 100000, breakdown.RemainingBalance, 0.01)
}

func TestRemainingPaymentsZeroRate(t *testing.T) {
	assert.Equal(t, 4.0, RemainingPayments(2000, 500, 0))
	assert.Equal(t, 5.0, RemainingPayments(2100, 500, 0), "partial payment rounds up")
}

func TestRemainingPaymentsClosedForm(t *testing.T) {
	// 12% annual -> 1% monthly. n = -ln(1 - 100000*0.01/2000) / ln(1.01).
	n := RemainingPayments(100000, 2000, 12)
	assert.Equal(t, 70.0, n)
}

func TestRemainingPaymentsNonConvergent(t *testing.T) {
	// Monthly interest on 100,000 at 12% is 1,000; a 500 payment never
	// reduces principal.
	assert.True(t, math.IsInf(RemainingPayments(100000, 500, 12), 1))

	// Payment exactly equal to the interest also never converges.
	assert.True(t, math.IsInf(RemainingPayments(100000, 1000, 12), 1))
}

func TestRemainingPaymentsEdgeCases(t *testing.T) {
	assert.Zero(t, RemainingPayments(0, 500, 12), "nothing owed")
	assert.True(t, math.IsInf(RemainingPayments(1000, 0, 12), 1), "no payment")
}

func TestTotalInterest(t *testing.T) {
	// 70 payments of 2000 against a 100,000 balance.
	total := TotalInterest(100000, 2000, 12)
	assert.InDelta(t, 40000, total, 0.01)
}

func TestTotalInterestZeroRate(t *testing.T) {
	assert.InDelta(t, 0, TotalInterest(2000, 500, 0), 0.01)
}

func TestTotalInterestPropagatesInfinity(t *testing.T) {
	assert.True(t, math.IsInf(TotalInterest(100000, 500, 12), 1))
}

func TestMonthlyRate(t *testing.T) {
	assert.InDelta(t, 0.007, MonthlyRate(8.4), 1e-9)
	assert.Zero(t, MonthlyRate(0))
	assert.Zero(t, MonthlyRate(-5))
}
