package order

import (
	"go.uber.org/zap"

	"gayo/internal/order/controller"
	"gayo/internal/order/repository"
	"gayo/internal/order/usecase"
	"gayo/internal/store"
)

func NewModule(acc *store.Accessor, logger *zap.Logger) *controller.CreateOrderController {
	repo := repository.NewOrderRepository(acc)
	uc := usecase.NewCreateOrderUseCase(repo, logger)
	return controller.NewCreateOrderController(uc, logger)
}
