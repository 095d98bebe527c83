package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	wrapped := NewUserError("failed to open database", ErrMissingConfig)

	assert.Equal(t, "failed to open database: missing configuration", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrMissingConfig, "the cause stays reachable through Unwrap")

	var userErr *UserError
	assert.ErrorAs(t, wrapped, &userErr)
	assert.Equal(t, "failed to open database", userErr.UserMessage)
}

func TestUserErrorWithoutCause(t *testing.T) {
	err := &UserError{UserMessage: "nothing to refresh"}
	assert.Equal(t, "nothing to refresh", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestSentinelWrapping(t *testing.T) {
	err := fmt.Errorf("%w: goals: connection reset", ErrAdapterFetch)
	assert.ErrorIs(t, err, ErrAdapterFetch)

	err = fmt.Errorf("categories %q: %w", "Housing", ErrDuplicateEntry)
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}
