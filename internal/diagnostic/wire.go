package diagnostic

import (
	"go.uber.org/zap"

	"gayo/internal/config"
	"gayo/internal/store"
)

func NewModule(acc *store.Accessor, cfg *config.Config, logger *zap.Logger) *Controller {
	svc := NewService(acc, cfg.Database)
	return NewController(svc, cfg.App.Name, logger)
}
