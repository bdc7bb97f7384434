package diagnostic

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"gayo/internal/commons"
	"gayo/internal/dto"
)

type Controller struct {
	service *Service
	appName string
	logger  *zap.Logger
}

func NewController(service *Service, appName string, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		appName: appName,
		logger:  logger,
	}
}

func (c *Controller) Root(w http.ResponseWriter, r *http.Request) {
	commons.WriteJSON(w, http.StatusOK, dto.StatusResponse{
		Message: fmt.Sprintf("%s backend is running", c.appName),
	}, c.logger)
}

// Test always answers 200, whatever state the store is in.
func (c *Controller) Test(w http.ResponseWriter, r *http.Request) {
	_, logger := commons.NewTrace(w, c.logger)

	resp := c.service.Diagnose(r.Context())
	logger.Debug("diagnostic check",
		zap.String("connectionStatus", resp.ConnectionStatus),
		zap.Int("collections", len(resp.Collections)),
	)

	commons.WriteJSON(w, http.StatusOK, resp, logger)
}
