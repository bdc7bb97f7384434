package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"gayo/internal/commons"
	"gayo/internal/dto"
)

type ListMenuUseCase interface {
	ListMenu(ctx context.Context) ([]dto.MenuItemResponse, error)
}

type MenuController struct {
	useCase ListMenuUseCase
	logger  *zap.Logger
}

func NewMenuController(useCase ListMenuUseCase, logger *zap.Logger) *MenuController {
	return &MenuController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *MenuController) ListMenu(w http.ResponseWriter, r *http.Request) {
	traceID, logger := commons.NewTrace(w, c.logger)

	items, err := c.useCase.ListMenu(r.Context())
	if err != nil {
		commons.HandleError(w, traceID, err, logger)
		return
	}

	commons.WriteJSON(w, http.StatusOK, items, logger)
}
