package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type UnitsController struct {
	unitService *services.UnitService
	validate    *validator.Validate
}

func NewUnitsController(us *services.UnitService) *UnitsController {
	return &UnitsController{unitService: us, validate: validator.New()}
}

// ----------------------------------------------------------------
// POST /api/v1/buildings/{buildingId}/units
// ----------------------------------------------------------------
func (c *UnitsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	buildingID, err := pathUUID(r, "buildingId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.CreateUnitRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	u, err := c.unitService.Create(r.Context(), tenantID, buildingID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, u)
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/{buildingId}/units
// ----------------------------------------------------------------
func (c *UnitsController) ListByBuildingHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	buildingID, err := pathUUID(r, "buildingId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	units, err := c.unitService.ListByBuilding(r.Context(), tenantID, buildingID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, units)
}

// ----------------------------------------------------------------
// GET /api/v1/units
// ----------------------------------------------------------------
func (c *UnitsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	after, err := queryCursor(r)
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	units, meta, err := c.unitService.List(r.Context(), tenantID, after)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, http.StatusOK, units, meta)
}

// ----------------------------------------------------------------
// GET /api/v1/units/{unitId}
// ----------------------------------------------------------------
func (c *UnitsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	u, err := c.unitService.Get(r.Context(), tenantID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, u)
}

// ----------------------------------------------------------------
// PATCH /api/v1/units/{unitId}
// ----------------------------------------------------------------
func (c *UnitsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.UpdateUnitRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	u, err := c.unitService.Update(r.Context(), tenantID, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, u)
}
