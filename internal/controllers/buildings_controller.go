package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type BuildingsController struct {
	buildingService *services.BuildingService
	validate        *validator.Validate
}

func NewBuildingsController(bs *services.BuildingService) *BuildingsController {
	return &BuildingsController{buildingService: bs, validate: validator.New()}
}

// ----------------------------------------------------------------
// POST /api/v1/buildings
// ----------------------------------------------------------------
func (c *BuildingsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.CreateBuildingRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	b, err := c.buildingService.Create(r.Context(), tenantID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, b)
}

// ----------------------------------------------------------------
// GET /api/v1/buildings
// ----------------------------------------------------------------
func (c *BuildingsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	after, err := queryCursor(r)
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	rows, meta, err := c.buildingService.List(r.Context(), tenantID, after)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, http.StatusOK, rows, meta)
}

// ----------------------------------------------------------------
// GET /api/v1/buildings/{buildingId}
// ----------------------------------------------------------------
func (c *BuildingsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "buildingId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	b, err := c.buildingService.Get(r.Context(), tenantID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, b)
}

// ----------------------------------------------------------------
// PATCH /api/v1/buildings/{buildingId}
// ----------------------------------------------------------------
func (c *BuildingsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "buildingId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.UpdateBuildingRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	b, err := c.buildingService.Update(r.Context(), tenantID, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, b)
}

// ----------------------------------------------------------------
// DELETE /api/v1/buildings/{buildingId}
// ----------------------------------------------------------------
func (c *BuildingsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "buildingId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	if err := c.buildingService.Delete(r.Context(), tenantID, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
