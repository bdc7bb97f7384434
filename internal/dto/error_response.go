package dto

import (
	"time"

	apperrors "gayo/internal/errors"
)

type ErrorResponse struct {
	TraceID   string                       `json:"traceId"`
	Error     string                       `json:"error"`
	Message   string                       `json:"message"`
	Details   []apperrors.ValidationDetail `json:"details,omitempty"`
	Timestamp time.Time                    `json:"timestamp"`
}

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeStorage          = "STORAGE_ERROR"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
)
