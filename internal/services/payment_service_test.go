package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/utils"
)

type paymentFixture struct {
	svc      *PaymentService
	charges  *fakeChargeRepo
	payments *fakePaymentRepo
	people   *fakePersonRepo
	tenantID uuid.UUID
	chargeID uuid.UUID
}

func newPaymentFixture(t *testing.T, strict bool) *paymentFixture {
	t.Helper()

	charges := newFakeChargeRepo()
	payments := newFakePaymentRepo(charges)
	people := newFakePersonRepo()
	clock := utils.FixedClock{T: testToday}

	tenantID := uuid.New()
	chargeID := uuid.New()
	charges.put(&models.Charge{
		ID:          chargeID,
		TenantID:    tenantID,
		UnitID:      uuid.New(),
		PeriodMonth: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		AmountDue:   50_000,
		AmountPaid:  0,
		Status:      models.ChargeStatusPending,
		DueDate:     time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
	})

	return &paymentFixture{
		svc:      NewPaymentService(payments, charges, people, clock, strict),
		charges:  charges,
		payments: payments,
		people:   people,
		tenantID: tenantID,
		chargeID: chargeID,
	}
}

func recordReq(amount int64) dtos.RecordPaymentRequest {
	return dtos.RecordPaymentRequest{
		Amount: amount,
		Method: "bank_transfer",
		PaidAt: dtos.NewDate(testToday),
	}
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("partial payment moves the charge to partial", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(20_000))
		require.NoError(t, err)
		require.Equal(t, int64(20_000), resp.Payment.Amount)
		require.Equal(t, models.ChargeStatusPartial, resp.Charge.Status)
		require.Equal(t, int64(20_000), resp.Charge.AmountPaid)
	})

	t.Run("full payment settles the charge", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(50_000))
		require.NoError(t, err)
		require.Equal(t, models.ChargeStatusPaid, resp.Charge.Status)
	})

	t.Run("future payment date is rejected", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		req := recordReq(20_000)
		req.PaidAt = dtos.NewDate(testToday.AddDate(0, 0, 1))
		_, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, req)
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 400, appErr.StatusCode)
		require.Equal(t, utils.ErrCodeInvalidPaymentDate, appErr.Code)
	})

	t.Run("settled charge rejects further payments", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		_, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(50_000))
		require.NoError(t, err)

		_, err = f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(1_000))
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 409, appErr.StatusCode)
		require.Equal(t, utils.ErrCodeChargeAlreadySettled, appErr.Code)
	})

	t.Run("waived charge rejects payments", func(t *testing.T) {
		f := newPaymentFixture(t, false)
		f.charges.charges[f.chargeID].Status = models.ChargeStatusWaived

		_, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(1_000))
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, utils.ErrCodeChargeAlreadySettled, appErr.Code)
	})

	t.Run("amount above the original due is a 422", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		_, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(50_001))
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 422, appErr.StatusCode)
		require.Equal(t, utils.ErrCodeAmountExceedsDue, appErr.Code)
	})

	t.Run("default mode validates against the original due, not the balance", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		_, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(30_000))
		require.NoError(t, err)

		// 30k already paid; another 30k passes the original-due check and
		// settles the charge.
		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(30_000))
		require.NoError(t, err)
		require.Equal(t, models.ChargeStatusPaid, resp.Charge.Status)
	})

	t.Run("strict mode validates against the remaining balance", func(t *testing.T) {
		f := newPaymentFixture(t, true)

		_, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(30_000))
		require.NoError(t, err)

		_, err = f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(30_000))
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, utils.ErrCodeAmountExceedsDue, appErr.Code)
	})

	t.Run("unknown charge is a 404", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		_, err := f.svc.Record(ctx, f.tenantID, uuid.New(), nil, recordReq(1_000))
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("recorded_by resolves through the actor's person record", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		authID := uuid.New()
		personID := uuid.New()
		require.NoError(t, f.people.Create(ctx, &models.Person{
			ID: personID, TenantID: f.tenantID, FullName: "Manager", AuthUserID: &authID,
		}))

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, &authID, recordReq(10_000))
		require.NoError(t, err)
		require.NotNil(t, resp.Payment.RecordedBy)
		require.Equal(t, personID, *resp.Payment.RecordedBy)
	})

	t.Run("unresolvable actor leaves recorded_by empty without failing", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		unknownAuth := uuid.New()
		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, &unknownAuth, recordReq(10_000))
		require.NoError(t, err)
		require.Nil(t, resp.Payment.RecordedBy)
	})
}

func TestUpdatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("shrinking a settling payment drops the charge back to partial", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(50_000))
		require.NoError(t, err)
		require.Equal(t, models.ChargeStatusPaid, resp.Charge.Status)

		got, err := f.svc.Update(ctx, f.tenantID, resp.Payment.ID, dtos.UpdatePaymentRequest{
			Amount: utils.Ptr(int64(20_000)),
		})
		require.NoError(t, err)
		require.Equal(t, int64(20_000), got.Payment.Amount)
		require.Equal(t, models.ChargeStatusPartial, got.Charge.Status)
		require.Equal(t, int64(20_000), got.Charge.AmountPaid)
	})

	t.Run("correcting method only leaves amounts alone", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(20_000))
		require.NoError(t, err)

		got, err := f.svc.Update(ctx, f.tenantID, resp.Payment.ID, dtos.UpdatePaymentRequest{
			Method: utils.Ptr("cash"),
		})
		require.NoError(t, err)
		require.Equal(t, models.PaymentMethodCash, got.Payment.Method)
		require.Equal(t, int64(20_000), got.Charge.AmountPaid)
	})

	t.Run("future date is rejected on update too", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(20_000))
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, f.tenantID, resp.Payment.ID, dtos.UpdatePaymentRequest{
			PaidAt: utils.Ptr(dtos.NewDate(testToday.AddDate(0, 0, 3))),
		})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, utils.ErrCodeInvalidPaymentDate, appErr.Code)
	})

	t.Run("unknown payment is a 404", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		_, err := f.svc.Update(ctx, f.tenantID, uuid.New(), dtos.UpdatePaymentRequest{
			Method: utils.Ptr("cash"),
		})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("amount above the original due is rejected", func(t *testing.T) {
		f := newPaymentFixture(t, false)

		resp, err := f.svc.Record(ctx, f.tenantID, f.chargeID, nil, recordReq(20_000))
		require.NoError(t, err)

		_, err = f.svc.Update(ctx, f.tenantID, resp.Payment.ID, dtos.UpdatePaymentRequest{
			Amount: utils.Ptr(int64(60_000)),
		})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, utils.ErrCodeAmountExceedsDue, appErr.Code)
	})
}
