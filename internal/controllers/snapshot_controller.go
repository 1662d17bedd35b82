package controllers

import (
	"net/http"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/services"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type SnapshotController struct {
	snapshotService *services.SnapshotService
}

func NewSnapshotController(ss *services.SnapshotService) *SnapshotController {
	return &SnapshotController{snapshotService: ss}
}

// ----------------------------------------------------------------
// GET /api/v1/billing/snapshot
// ----------------------------------------------------------------
func (c *SnapshotController) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenantFromContext(w, r)
	if !ok {
		return
	}

	var q dtos.SnapshotQuery
	period, err := queryMonth(r, "period_month")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	q.PeriodMonth = period

	q.BuildingID, err = queryUUID(r, "building_id")
	if err != nil {
		respondBadRequest(w, err)
		return
	}

	snapshot, err := c.snapshotService.Snapshot(r.Context(), tenantID, q)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithData(w, http.StatusOK, snapshot)
}
