package controllers

import (
	"context"
	"net/http"

	"github.com/veranda-pm/billing-service/internal/app"
	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/utils"
)

// HealthController checks DB connectivity.
type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

// HealthCheckHandler => GET /health
func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB.Ping(context.Background()); err != nil {
		utils.Logger.WithError(err).Error("database unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
