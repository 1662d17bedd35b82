package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type PaymentConfigsController struct {
	configService *services.PaymentConfigService
	validate      *validator.Validate
}

func NewPaymentConfigsController(cs *services.PaymentConfigService) *PaymentConfigsController {
	return &PaymentConfigsController{configService: cs, validate: validator.New()}
}

// ----------------------------------------------------------------
// GET /api/v1/units/{unitId}/payment-config
// ----------------------------------------------------------------
func (c *PaymentConfigsController) GetActiveHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	unitID, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	cfg, err := c.configService.GetActive(r.Context(), tenantID, unitID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	// cfg may be nil: the unit simply is not configured yet.
	utils.RespondWithData(w, http.StatusOK, cfg)
}

// ----------------------------------------------------------------
// GET /api/v1/units/{unitId}/payment-config/history
// ----------------------------------------------------------------
func (c *PaymentConfigsController) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	unitID, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	history, err := c.configService.History(r.Context(), tenantID, unitID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, history)
}

// ----------------------------------------------------------------
// PUT /api/v1/units/{unitId}/payment-config
// ----------------------------------------------------------------
func (c *PaymentConfigsController) SetHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	unitID, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.SetPaymentConfigRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	actorID := utils.AuthUserIDFromContext(r.Context())
	cfg, err := c.configService.Set(r.Context(), tenantID, unitID, actorID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, cfg)
}
