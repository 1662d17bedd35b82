package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type RolesController struct {
	roleService *services.RoleService
	validate    *validator.Validate
}

func NewRolesController(rs *services.RoleService) *RolesController {
	return &RolesController{roleService: rs, validate: validator.New()}
}

// ----------------------------------------------------------------
// POST /api/v1/units/{unitId}/roles
// ----------------------------------------------------------------
func (c *RolesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	unitID, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.CreateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	role, err := c.roleService.Create(r.Context(), tenantID, unitID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, role)
}

// ----------------------------------------------------------------
// GET /api/v1/units/{unitId}/roles
// ----------------------------------------------------------------
func (c *RolesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	unitID, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	roles, err := c.roleService.ListByUnit(r.Context(), tenantID, unitID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, roles)
}

// ----------------------------------------------------------------
// PATCH /api/v1/units/{unitId}/roles/{roleId}
// ----------------------------------------------------------------
func (c *RolesController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	unitID, err := pathUUID(r, "unitId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	roleID, err := pathUUID(r, "roleId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.UpdateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	role, err := c.roleService.Update(r.Context(), tenantID, unitID, roleID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, role)
}
