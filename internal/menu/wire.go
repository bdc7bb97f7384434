package menu

import (
	"go.uber.org/zap"

	"gayo/internal/menu/controller"
	"gayo/internal/menu/repository"
	"gayo/internal/menu/seed"
	"gayo/internal/menu/usecase"
	"gayo/internal/store"
)

type Module struct {
	Controller *controller.MenuController
	Seeder     *seed.Seeder
}

func NewModule(acc *store.Accessor, entries []seed.Entry, logger *zap.Logger) *Module {
	repo := repository.NewMenuRepository(acc)
	uc := usecase.NewListMenuUseCase(repo, logger)

	return &Module{
		Controller: controller.NewMenuController(uc, logger),
		Seeder:     seed.NewSeeder(repo, entries, logger),
	}
}
