package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveAmount(t *testing.T) {
	fixed := RecurringObligation{AmountType: AmountFixed, Amount: 1450, EstimatedAmount: 99}
	assert.InDelta(t, 1450, fixed.ResolveAmount(), 0.001)

	variable := RecurringObligation{AmountType: AmountVariable, Amount: 1450, EstimatedAmount: 85}
	assert.InDelta(t, 85, variable.ResolveAmount(), 0.001)
}

func TestGoalRemainingAmount(t *testing.T) {
	goal := Goal{TargetAmount: 5000, SavedAmount: 1200}
	assert.InDelta(t, 3800, goal.RemainingAmount(), 0.001)

	overfunded := Goal{TargetAmount: 1000, SavedAmount: 1500}
	assert.Zero(t, overfunded.RemainingAmount(), "never goes negative")
}

func TestOccurrenceID(t *testing.T) {
	assert.Equal(t, "42_2025-06-15", OccurrenceID(42, Date(2025, time.June, 15)))

	// Same source, different dates: distinct identities.
	assert.NotEqual(t,
		OccurrenceID(42, Date(2025, time.June, 15)),
		OccurrenceID(42, Date(2025, time.July, 15)))
}
