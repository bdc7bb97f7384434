package usecase

import (
	"context"

	"go.uber.org/zap"

	"gayo/internal/domain"
	"gayo/internal/dto"
	"gayo/internal/schema"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (string, error)
}

type CreateOrderUseCase struct {
	repo   OrderRepository
	logger *zap.Logger
}

func NewCreateOrderUseCase(repo OrderRepository, logger *zap.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		repo:   repo,
		logger: logger,
	}
}

// CreateOrder validates and stores order. Delivery orders without an
// address are accepted.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, order domain.Order) (*dto.CreateOrderResponse, error) {
	if err := schema.ValidateOrder(order); err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("orderId", id),
		zap.String("preferredMethod", string(order.PreferredMethod)),
		zap.Int("itemCount", len(order.Items)),
	)

	return &dto.CreateOrderResponse{
		Status:  dto.OrderStatusOK,
		OrderID: id,
	}, nil
}
