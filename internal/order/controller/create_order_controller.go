package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"gayo/internal/commons"
	"gayo/internal/domain"
	"gayo/internal/dto"
	apperrors "gayo/internal/errors"
	"gayo/internal/schema"
)

// maxBodyBytes caps order payloads; a real order is a few hundred bytes.
const maxBodyBytes = 1 << 20

type CreateOrderUseCase interface {
	CreateOrder(ctx context.Context, order domain.Order) (*dto.CreateOrderResponse, error)
}

type CreateOrderController struct {
	useCase CreateOrderUseCase
	logger  *zap.Logger
}

func NewCreateOrderController(useCase CreateOrderUseCase, logger *zap.Logger) *CreateOrderController {
	return &CreateOrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CreateOrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.NewTrace(w, c.logger)

	order, err := schema.DecodeOrder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			logger.Warn("invalid order payload", zap.Any("details", ve.Details))
		}
		commons.HandleError(w, traceID, err, logger)
		return
	}

	resp, err := c.useCase.CreateOrder(r.Context(), order)
	if err != nil {
		commons.HandleError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}
