package commons

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gayo/internal/dto"
	apperrors "gayo/internal/errors"
)

const TraceHeader = "X-Trace-Id"

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

func WriteValidationError(w http.ResponseWriter, traceID string, ve *apperrors.ValidationError, logger *zap.Logger) {
	WriteJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
		TraceID:   traceID,
		Error:     dto.CodeValidation,
		Message:   ve.Message,
		Details:   ve.Details,
		Timestamp: time.Now().UTC(),
	}, logger)
}

func WriteErrorResponse(w http.ResponseWriter, traceID string, status int, code, message string, logger *zap.Logger) {
	WriteJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}, logger)
}

// HandleError maps the error taxonomy onto HTTP: validation 422, oversized
// body 413, store unavailable 503, storage 500 with the raw error text.
func HandleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Info("request rejected", zap.Int("violations", len(ve.Details)))
		WriteValidationError(w, traceID, ve, logger)
		return
	}

	if _, ok := apperrors.IsPayloadTooLargeError(err); ok {
		logger.Info("request rejected", zap.Error(err))
		WriteErrorResponse(w, traceID, http.StatusRequestEntityTooLarge, dto.CodePayloadTooLarge, err.Error(), logger)
		return
	}

	if errors.Is(err, apperrors.ErrStoreUnavailable) {
		logger.Warn("document store unavailable", zap.Error(err))
		WriteErrorResponse(w, traceID, http.StatusServiceUnavailable, dto.CodeStoreUnavailable, err.Error(), logger)
		return
	}

	if _, ok := apperrors.IsStorageError(err); ok {
		logger.Error("storage error", zap.Error(err))
		WriteErrorResponse(w, traceID, http.StatusInternalServerError, dto.CodeStorage, err.Error(), logger)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	WriteErrorResponse(w, traceID, http.StatusInternalServerError, dto.CodeInternal, err.Error(), logger)
}

// NewTrace tags the response with a fresh trace id and returns a logger
// carrying it.
func NewTrace(w http.ResponseWriter, logger *zap.Logger) (string, *zap.Logger) {
	traceID := uuid.New().String()
	w.Header().Set(TraceHeader, traceID)
	return traceID, logger.With(zap.String("traceId", traceID))
}
