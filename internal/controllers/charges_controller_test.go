package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/utils"
)

func TestParseListChargesQuery(t *testing.T) {
	t.Run("full query string", func(t *testing.T) {
		buildingID := uuid.New()
		cursorID := uuid.New()
		r := httptest.NewRequest("GET",
			"/api/v1/charges?period_month=2025-08&building_id="+buildingID.String()+
				"&status=pending,partial&cursor="+utils.EncodeCursor(cursorID), nil)

		q, err := parseListChargesQuery(r)
		require.NoError(t, err)
		require.Equal(t, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), q.PeriodMonth)
		require.NotNil(t, q.BuildingID)
		require.Equal(t, buildingID, *q.BuildingID)
		require.Equal(t, []models.ChargeStatus{models.ChargeStatusPending, models.ChargeStatusPartial}, q.Statuses)
		require.False(t, q.Overdue)
		require.NotNil(t, q.After)
		require.Equal(t, cursorID, *q.After)
	})

	t.Run("full date period is accepted", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08-19", nil)
		q, err := parseListChargesQuery(r)
		require.NoError(t, err)
		require.Equal(t, time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC), q.PeriodMonth)
	})

	t.Run("overdue flag", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08&overdue=true", nil)
		q, err := parseListChargesQuery(r)
		require.NoError(t, err)
		require.True(t, q.Overdue)
	})

	t.Run("overdue as a status value", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08&status=overdue", nil)
		q, err := parseListChargesQuery(r)
		require.NoError(t, err)
		require.True(t, q.Overdue)
		require.Empty(t, q.Statuses)
	})

	t.Run("status overdue survives an absent overdue param", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08&status=overdue&overdue=false", nil)
		q, err := parseListChargesQuery(r)
		require.NoError(t, err)
		require.True(t, q.Overdue)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08&status=bogus", nil)
		_, err := parseListChargesQuery(r)
		require.Error(t, err)
	})

	t.Run("synthetic no_config is not filterable", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08&status=no_config", nil)
		_, err := parseListChargesQuery(r)
		require.Error(t, err)
	})

	t.Run("malformed cursor is rejected", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/v1/charges?period_month=2025-08&cursor=%21%21", nil)
		_, err := parseListChargesQuery(r)
		require.Error(t, err)
	})
}
