package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/constants"
	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/repositories"
	"github.com/veranda-pm/billing-service/internal/utils"
)

// OnboardingService seeds an existing building with units, people, roles
// and payment configs in one transaction. It exists so a new building
// can be brought online in a single call instead of dozens; any failure
// rolls back everything.
type OnboardingService struct {
	db        repositories.DB
	buildings repositories.BuildingRepository
	people    repositories.PersonRepository
	clock     utils.Clock
}

func NewOnboardingService(
	db repositories.DB,
	buildings repositories.BuildingRepository,
	people repositories.PersonRepository,
	clock utils.Clock,
) *OnboardingService {
	return &OnboardingService{db: db, buildings: buildings, people: people, clock: clock}
}

func (s *OnboardingService) Onboard(
	ctx context.Context,
	tenantID, buildingID uuid.UUID,
	actorAuthID *uuid.UUID,
	req dtos.OnboardBuildingRequest,
) (*dtos.OnboardBuildingResponse, error) {
	b, err := s.buildings.GetByID(ctx, tenantID, buildingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Building not found")
	}

	if err := validateOnboardRequest(req); err != nil {
		return nil, err
	}

	createdBy := s.resolveActor(ctx, tenantID, actorAuthID)
	resp := &dtos.OnboardBuildingResponse{BuildingID: buildingID}

	err = repositories.WithTx(ctx, s.db, func(tx repositories.DB) error {
		units := repositories.NewUnitRepository(tx)
		people := repositories.NewPersonRepository(tx)
		roles := repositories.NewUnitRoleRepository(tx)
		configs := repositories.NewPaymentConfigRepository(tx)

		for _, ou := range req.Units {
			unit := &models.Unit{
				ID:         uuid.New(),
				TenantID:   tenantID,
				BuildingID: buildingID,
				UnitNumber: ou.UnitNumber,
				Floor:      ou.Floor,
			}
			if err := units.Create(ctx, unit); err != nil {
				return err
			}
			resp.UnitsCreated++

			for _, or := range ou.Roles {
				personID, created, err := resolveOnboardPerson(ctx, people, tenantID, or)
				if err != nil {
					return err
				}
				if created {
					resp.PeopleCreated++
				}

				role := &models.UnitRole{
					ID:            uuid.New(),
					TenantID:      tenantID,
					UnitID:        unit.ID,
					PersonID:      personID,
					RoleType:      models.RoleType(or.RoleType),
					EffectiveFrom: utils.DateOnly(or.EffectiveFrom.Time),
					IsFeePayer:    or.IsFeePayer,
				}
				if err := roles.Create(ctx, role); err != nil {
					return err
				}
				resp.RolesCreated++
			}

			if ou.PaymentConfig != nil {
				cfg := &models.UnitPaymentConfig{
					ID:            uuid.New(),
					TenantID:      tenantID,
					UnitID:        unit.ID,
					MonthlyAmount: ou.PaymentConfig.MonthlyAmount,
					EffectiveFrom: utils.DateOnly(ou.PaymentConfig.EffectiveFrom.Time),
					CreatedBy:     createdBy,
				}
				if err := configs.SetActive(ctx, cfg); err != nil {
					return err
				}
				resp.ConfigsCreated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// validateOnboardRequest rejects shapes the struct tags cannot express:
// dates, person references and more than one fee payer per unit.
func validateOnboardRequest(req dtos.OnboardBuildingRequest) error {
	for _, ou := range req.Units {
		feePayers := 0
		for _, or := range ou.Roles {
			if or.EffectiveFrom.IsZero() {
				return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
					"roles require effective_from")
			}
			if (or.PersonID == nil) == (or.Person == nil) {
				return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
					"each role needs exactly one of person_id or person")
			}
			if or.IsFeePayer {
				feePayers++
			}
		}
		if feePayers > 1 {
			return utils.NewAppError(http.StatusConflict, utils.ErrCodeDuplicateFeePayer,
				"unit "+ou.UnitNumber+" has more than one fee payer")
		}
		if ou.PaymentConfig != nil {
			if ou.PaymentConfig.EffectiveFrom.IsZero() {
				return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
					"payment_config requires effective_from")
			}
			if ou.PaymentConfig.MonthlyAmount <= 0 || ou.PaymentConfig.MonthlyAmount > constants.MonthlyAmountCeiling {
				return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
					"payment_config monthly_amount out of range")
			}
		}
	}
	return nil
}

func resolveOnboardPerson(
	ctx context.Context,
	people repositories.PersonRepository,
	tenantID uuid.UUID,
	or dtos.OnboardRole,
) (uuid.UUID, bool, error) {
	if or.PersonID != nil {
		p, err := people.GetByID(ctx, tenantID, *or.PersonID)
		if err != nil {
			return uuid.Nil, false, err
		}
		if p == nil {
			return uuid.Nil, false, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Person not found")
		}
		return p.ID, false, nil
	}

	p := &models.Person{
		ID:         uuid.New(),
		TenantID:   tenantID,
		FullName:   or.Person.FullName,
		Email:      or.Person.Email,
		Phone:      or.Person.Phone,
		AuthUserID: or.Person.AuthUserID,
	}
	if err := people.Create(ctx, p); err != nil {
		return uuid.Nil, false, err
	}
	return p.ID, true, nil
}

func (s *OnboardingService) resolveActor(ctx context.Context, tenantID uuid.UUID, actorAuthID *uuid.UUID) *uuid.UUID {
	if actorAuthID == nil {
		return nil
	}
	p, err := s.people.GetByAuthUserID(ctx, tenantID, *actorAuthID)
	if err != nil || p == nil {
		return nil
	}
	return &p.ID
}
