package usecase

import (
	"context"

	"go.uber.org/zap"

	"gayo/internal/domain"
	"gayo/internal/dto"
)

type MenuRepository interface {
	FindAll(ctx context.Context) ([]domain.CafeMenuItem, error)
}

type ListMenuUseCase struct {
	repo   MenuRepository
	logger *zap.Logger
}

func NewListMenuUseCase(repo MenuRepository, logger *zap.Logger) *ListMenuUseCase {
	return &ListMenuUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListMenuUseCase) ListMenu(ctx context.Context) ([]dto.MenuItemResponse, error) {
	items, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.MenuItemResponse, 0, len(items))
	for _, it := range items {
		var size *string
		if it.Size != nil {
			s := string(*it.Size)
			size = &s
		}
		resp = append(resp, dto.MenuItemResponse{
			Name:        it.Name,
			Category:    string(it.Category),
			Description: it.Description,
			Size:        size,
			Price:       it.Price,
			Available:   it.Available,
		})
	}

	uc.logger.Debug("menu listed", zap.Int("count", len(resp)))
	return resp, nil
}
