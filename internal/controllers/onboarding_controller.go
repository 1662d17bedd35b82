package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type OnboardingController struct {
	onboardingService *services.OnboardingService
	validate          *validator.Validate
}

func NewOnboardingController(os *services.OnboardingService) *OnboardingController {
	return &OnboardingController{onboardingService: os, validate: validator.New()}
}

// ----------------------------------------------------------------
// POST /api/v1/buildings/{buildingId}/onboard
// ----------------------------------------------------------------
func (c *OnboardingController) OnboardHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	buildingID, err := pathUUID(r, "buildingId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.OnboardBuildingRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	actorID := utils.AuthUserIDFromContext(r.Context())
	resp, err := c.onboardingService.Onboard(r.Context(), tenantID, buildingID, actorID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, resp)
}
