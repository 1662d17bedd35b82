package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

// PaymentService records and amends payments against charges. Writing a
// payment and rolling it into the charge's amount_paid and status is a
// single transaction at the repository level.
//
// Overpayment checks come in two modes. The default validates the amount
// against the charge's original amount_due, matching the historical
// behavior clients rely on; StrictBalanceCheck validates against the
// remaining balance instead.
type PaymentService struct {
	payments           repositories.PaymentRepository
	charges            repositories.ChargeRepository
	people             repositories.PersonRepository
	clock              utils.Clock
	strictBalanceCheck bool
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	charges repositories.ChargeRepository,
	people repositories.PersonRepository,
	clock utils.Clock,
	strictBalanceCheck bool,
) *PaymentService {
	return &PaymentService{
		payments:           payments,
		charges:            charges,
		people:             people,
		clock:              clock,
		strictBalanceCheck: strictBalanceCheck,
	}
}

func (s *PaymentService) Record(
	ctx context.Context,
	tenantID, chargeID uuid.UUID,
	actorAuthID *uuid.UUID,
	req dtos.RecordPaymentRequest,
) (*dtos.PaymentWithChargeResponse, error) {
	charge, err := s.charges.GetByID(ctx, tenantID, chargeID)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Charge not found")
	}

	paidAt, err := s.validPaidAt(&req.PaidAt)
	if err != nil {
		return nil, err
	}

	if charge.IsSettled() {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeChargeAlreadySettled,
			"Charge is already settled")
	}

	limit := charge.AmountDue
	if s.strictBalanceCheck {
		limit = charge.AmountDue - charge.AmountPaid
	}
	if req.Amount > limit {
		return nil, utils.NewAppError(http.StatusUnprocessableEntity, utils.ErrCodeAmountExceedsDue,
			"Payment amount exceeds the amount due")
	}

	p := &models.Payment{
		ID:         uuid.New(),
		TenantID:   tenantID,
		ChargeID:   chargeID,
		Amount:     req.Amount,
		Method:     models.PaymentMethod(req.Method),
		PaidAt:     paidAt,
		Notes:      req.Notes,
		RecordedBy: s.resolveActor(ctx, tenantID, actorAuthID),
	}

	updated, err := s.payments.CreateAndApply(ctx, p)
	if err != nil {
		return nil, err
	}
	saved, err := s.payments.GetByID(ctx, tenantID, p.ID)
	if err != nil {
		return nil, err
	}
	return &dtos.PaymentWithChargeResponse{Payment: saved, Charge: updated}, nil
}

func (s *PaymentService) ListByCharge(ctx context.Context, tenantID, chargeID uuid.UUID) ([]*models.Payment, error) {
	charge, err := s.charges.GetByID(ctx, tenantID, chargeID)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Charge not found")
	}
	return s.payments.ListByChargeID(ctx, tenantID, chargeID)
}

// Update amends a recorded payment (typo corrections) and re-derives the
// charge from the full payment sum. Unlike Record it does not reject on
// charge status: a paid charge can drop back to partial when the
// correcting amount shrinks.
func (s *PaymentService) Update(
	ctx context.Context,
	tenantID, paymentID uuid.UUID,
	req dtos.UpdatePaymentRequest,
) (*dtos.PaymentWithChargeResponse, error) {
	p, err := s.payments.GetByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Payment not found")
	}

	charge, err := s.charges.GetByID(ctx, tenantID, p.ChargeID)
	if err != nil {
		return nil, err
	}
	if charge == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Charge not found")
	}

	if req.PaidAt != nil {
		paidAt, err := s.validPaidAt(req.PaidAt)
		if err != nil {
			return nil, err
		}
		p.PaidAt = paidAt
	}
	if req.Method != nil {
		p.Method = models.PaymentMethod(*req.Method)
	}
	if req.Notes != nil {
		p.Notes = req.Notes
	}
	if req.Amount != nil {
		limit := charge.AmountDue
		if s.strictBalanceCheck {
			// The balance available to this payment excludes its own
			// previous amount.
			limit = charge.AmountDue - (charge.AmountPaid - p.Amount)
		}
		if *req.Amount > limit {
			return nil, utils.NewAppError(http.StatusUnprocessableEntity, utils.ErrCodeAmountExceedsDue,
				"Payment amount exceeds the amount due")
		}
		p.Amount = *req.Amount
	}

	updated, err := s.payments.UpdateAndRecompute(ctx, p)
	if err != nil {
		return nil, err
	}
	saved, err := s.payments.GetByID(ctx, tenantID, paymentID)
	if err != nil {
		return nil, err
	}
	return &dtos.PaymentWithChargeResponse{Payment: saved, Charge: updated}, nil
}

// validPaidAt normalizes the payment date and rejects future dates. The
// comparison is date-only, so a payment later today is fine.
func (s *PaymentService) validPaidAt(d *dtos.Date) (time.Time, error) {
	if d == nil || d.IsZero() {
		return time.Time{}, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation, "paid_at is required")
	}
	paidAt := utils.DateOnly(d.Time)
	if paidAt.After(utils.DateOnly(s.clock.Now())) {
		return time.Time{}, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidPaymentDate,
			"paid_at must not be in the future")
	}
	return paidAt, nil
}

func (s *PaymentService) resolveActor(ctx context.Context, tenantID uuid.UUID, actorAuthID *uuid.UUID) *uuid.UUID {
	if actorAuthID == nil {
		return nil
	}
	p, err := s.people.GetByAuthUserID(ctx, tenantID, *actorAuthID)
	if err != nil || p == nil {
		if err != nil {
			utils.Logger.WithError(err).Warn("could not resolve acting person, leaving recorded_by empty")
		}
		return nil
	}
	return &p.ID
}
