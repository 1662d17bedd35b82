package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type PeopleController struct {
	personService *services.PersonService
	validate      *validator.Validate
}

func NewPeopleController(ps *services.PersonService) *PeopleController {
	return &PeopleController{personService: ps, validate: validator.New()}
}

// ----------------------------------------------------------------
// POST /api/v1/people
// ----------------------------------------------------------------
func (c *PeopleController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePersonRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	p, err := c.personService.Create(r.Context(), tenantID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, p)
}

// ----------------------------------------------------------------
// GET /api/v1/people
// ----------------------------------------------------------------
func (c *PeopleController) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	after, err := queryCursor(r)
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	rows, meta, err := c.personService.List(r.Context(), tenantID, after)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, http.StatusOK, rows, meta)
}

// ----------------------------------------------------------------
// GET /api/v1/people/{personId}
// ----------------------------------------------------------------
func (c *PeopleController) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "personId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	p, err := c.personService.Get(r.Context(), tenantID, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, p)
}

// ----------------------------------------------------------------
// PATCH /api/v1/people/{personId}
// ----------------------------------------------------------------
func (c *PeopleController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	id, err := pathUUID(r, "personId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.UpdatePersonRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	p, err := c.personService.Update(r.Context(), tenantID, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, p)
}
