package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("failed to insert booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "INTERNAL: failed to insert booking: connection refused", err.Error())
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("open session: %w", NewTitledValidationError("Missing Information", "Please fill in all required fields."))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)
	assert.Equal(t, "Missing Information", appErr.Title)
	assert.True(t, IsType(wrapped, ErrorTypeValidation))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeValidation))
}

func TestNewPaymentPersistenceError(t *testing.T) {
	err := NewPaymentPersistenceError("T123456", errors.New("insert rejected"))

	assert.Equal(t, ErrorTypePaymentPersistence, err.Type)
	assert.Equal(t, "T123456", err.Reference)
	assert.Contains(t, err.Message, "Payment was successful")
	assert.Contains(t, err.Message, "contact support")
	assert.Contains(t, err.Message, "T123456")
}
