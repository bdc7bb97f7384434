package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrStoreUnavailable is matched by every UnavailableError via errors.Is.
var ErrStoreUnavailable = stderrors.New("document store unavailable")

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stderrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// StorageError reports a document store that rejected an operation or could
// not be reached while performing it.
type StorageError struct {
	Op         string
	Collection string
	Cause      error
}

func (e *StorageError) Error() string {
	msg := e.Op
	if e.Collection != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Collection)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewStorageError(op, collection string, cause error) *StorageError {
	return &StorageError{
		Op:         op,
		Collection: collection,
		Cause:      cause,
	}
}

func IsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// UnavailableError is returned when no store connection was ever established.
type UnavailableError struct {
	Reason error
}

func (e *UnavailableError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("%s: %v", ErrStoreUnavailable.Error(), e.Reason)
	}
	return ErrStoreUnavailable.Error()
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

func (e *UnavailableError) Unwrap() error {
	return e.Reason
}

func NewUnavailableError(reason error) *UnavailableError {
	return &UnavailableError{Reason: reason}
}

func IsUnavailableError(err error) (*UnavailableError, bool) {
	var ue *UnavailableError
	if stderrors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// PayloadTooLargeError is returned when a request body exceeds its size cap.
type PayloadTooLargeError struct {
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

func NewPayloadTooLargeError(limit int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{Limit: limit}
}

func IsPayloadTooLargeError(err error) (*PayloadTooLargeError, bool) {
	var pe *PayloadTooLargeError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
