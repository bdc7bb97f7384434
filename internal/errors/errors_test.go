package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "email", Message: "must be a valid email address"},
		{Field: "customer_name", Message: "field required"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestValidationError_IsValidationError(t *testing.T) {
	err := fmt.Errorf("decoding order: %w", NewValidationError("bad"))

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "bad", ve.Message)
}

func TestValidationError_IsValidationError_WithOtherError(t *testing.T) {
	ve, ok := IsValidationError(errors.New("some other error"))
	assert.False(t, ok)
	assert.Nil(t, ve)
}

func TestStorageError_Creation(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("insert into", "order", cause)

	assert.Equal(t, "insert into order: connection refused", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))

	se, ok := IsStorageError(fmt.Errorf("wrapped: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "order", se.Collection)
}

func TestStorageError_NilCauseAndCollection(t *testing.T) {
	err := NewStorageError("list collections", "", nil)

	assert.Equal(t, "list collections", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestUnavailableError_MatchesSentinel(t *testing.T) {
	reason := errors.New("DATABASE_URL not set")
	err := NewUnavailableError(reason)

	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.True(t, errors.Is(err, reason))
	assert.Equal(t, "document store unavailable: DATABASE_URL not set", err.Error())

	ue, ok := IsUnavailableError(err)
	assert.True(t, ok)
	assert.Equal(t, reason, ue.Reason)
}

func TestUnavailableError_NilReason(t *testing.T) {
	err := NewUnavailableError(nil)

	assert.Equal(t, "document store unavailable", err.Error())
	_, ok := IsStorageError(err)
	assert.False(t, ok)
}

func TestPayloadTooLargeError(t *testing.T) {
	err := fmt.Errorf("decoding order: %w", NewPayloadTooLargeError(1<<20))

	pe, ok := IsPayloadTooLargeError(err)
	require.True(t, ok)
	assert.Equal(t, int64(1<<20), pe.Limit)
	assert.Equal(t, "decoding order: request body exceeds 1048576 bytes", err.Error())

	_, ok = IsValidationError(err)
	assert.False(t, ok)
}
