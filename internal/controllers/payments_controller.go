package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type PaymentsController struct {
	paymentService *services.PaymentService
	validate       *validator.Validate
}

func NewPaymentsController(ps *services.PaymentService) *PaymentsController {
	return &PaymentsController{paymentService: ps, validate: validator.New()}
}

// ----------------------------------------------------------------
// POST /api/v1/charges/{chargeId}/payments
// ----------------------------------------------------------------
func (c *PaymentsController) RecordHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	chargeID, err := pathUUID(r, "chargeId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.RecordPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	actorID := utils.AuthUserIDFromContext(r.Context())
	resp, err := c.paymentService.Record(r.Context(), tenantID, chargeID, actorID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/charges/{chargeId}/payments
// ----------------------------------------------------------------
func (c *PaymentsController) ListByChargeHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	chargeID, err := pathUUID(r, "chargeId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	payments, err := c.paymentService.ListByCharge(r.Context(), tenantID, chargeID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, payments)
}

// ----------------------------------------------------------------
// PUT /api/v1/payments/{paymentId}
// ----------------------------------------------------------------
func (c *PaymentsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	paymentID, err := pathUUID(r, "paymentId")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	var req dtos.UpdatePaymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := c.paymentService.Update(r.Context(), tenantID, paymentID, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, resp)
}
