package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("plain message", func(t *testing.T) {
		err := NewNotFoundError("booking 7 not found")
		assert.Equal(t, "NOT_FOUND: booking 7 not found", err.Error())
	})

	t.Run("fields are listed in key order", func(t *testing.T) {
		err := NewFieldError(map[string]string{
			"mobile": "Enter a valid 10-digit Indian mobile number.",
			"age":    "Enter a valid age (1-120).",
		})
		assert.Equal(t,
			"INVALID_INPUT: validation failed (age: Enter a valid age (1-120).; mobile: Enter a valid 10-digit Indian mobile number.)",
			err.Error())
	})

	t.Run("wrapped cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewInternalError("ledger unavailable", cause)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestNewFieldError_EmptyIsNil(t *testing.T) {
	assert.NoError(t, NewFieldError(nil))
	assert.NoError(t, NewFieldError(map[string]string{}))
}

func TestTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("advance: %w", NewGuardViolationError("no location"))

	assert.Equal(t, ErrorTypeGuardViolation, TypeOf(wrapped))
	assert.True(t, Is(wrapped, ErrorTypeGuardViolation))
	assert.False(t, Is(wrapped, ErrorTypeNotFound))
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("plain")))
	assert.False(t, Is(nil, ErrorTypeInternal))
}
