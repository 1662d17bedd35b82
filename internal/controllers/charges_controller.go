package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type ChargesController struct {
	chargeService *services.ChargeService
}

func NewChargesController(cs *services.ChargeService) *ChargesController {
	return &ChargesController{chargeService: cs}
}

// ----------------------------------------------------------------
// POST /api/v1/charges/generate
// ----------------------------------------------------------------
func (c *ChargesController) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}

	var req dtos.GenerateChargesRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, err)
		return
	}

	log, err := c.chargeService.Generate(r.Context(), tenantID, req.PeriodMonth.Time, models.GenerationTriggerManualAPI)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, log)
}

// ----------------------------------------------------------------
// GET /api/v1/charges
// ----------------------------------------------------------------
func (c *ChargesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}

	q, err := parseListChargesQuery(r)
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	items, meta, err := c.chargeService.List(r.Context(), tenantID, q)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, http.StatusOK, items, meta)
}

// ----------------------------------------------------------------
// GET /api/v1/charges/generation-logs
// ----------------------------------------------------------------
func (c *ChargesController) GenerationLogsHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}
	after, err := queryCursor(r)
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	rows, meta, err := c.chargeService.ListGenerationLogs(r.Context(), tenantID, after)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithPage(w, http.StatusOK, rows, meta)
}

func parseListChargesQuery(r *http.Request) (dtos.ListChargesQuery, error) {
	var q dtos.ListChargesQuery

	period, err := queryMonth(r, "period_month")
	if err != nil {
		return q, err
	}
	q.PeriodMonth = period

	q.BuildingID, err = queryUUID(r, "building_id")
	if err != nil {
		return q, err
	}

	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			status := models.ChargeStatus(strings.TrimSpace(s))
			switch status {
			case models.ChargeStatusPending, models.ChargeStatusPartial,
				models.ChargeStatusPaid, models.ChargeStatusWaived:
				q.Statuses = append(q.Statuses, status)
			case "overdue":
				// Derived filter, not a stored status.
				q.Overdue = true
			default:
				return q, fmt.Errorf("invalid status: %q", s)
			}
		}
	}

	if r.URL.Query().Get("overdue") == "true" {
		q.Overdue = true
	}

	q.After, err = utils.DecodeCursor(r.URL.Query().Get("cursor"))
	return q, err
}
