package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/veranda-pm/billing-service/internal/dtos"
	"github.com/veranda-pm/billing-service/internal/models"
	"github.com/veranda-pm/billing-service/internal/utils"
)

func onboardUnit(number string, roles ...dtos.OnboardRole) dtos.OnboardUnit {
	return dtos.OnboardUnit{UnitNumber: number, Floor: 1, Roles: roles}
}

func TestValidateOnboardRequest(t *testing.T) {
	existingID := uuid.New()

	t.Run("accepts a well-formed request", func(t *testing.T) {
		err := validateOnboardRequest(dtos.OnboardBuildingRequest{
			Units: []dtos.OnboardUnit{
				onboardUnit("101", dtos.OnboardRole{
					PersonID:      &existingID,
					RoleType:      "tenant",
					EffectiveFrom: dtos.NewDate(testToday),
					IsFeePayer:    true,
				}),
			},
		})
		require.NoError(t, err)
	})

	t.Run("rejects two fee payers on one unit", func(t *testing.T) {
		err := validateOnboardRequest(dtos.OnboardBuildingRequest{
			Units: []dtos.OnboardUnit{
				onboardUnit("101",
					dtos.OnboardRole{PersonID: &existingID, RoleType: "owner", EffectiveFrom: dtos.NewDate(testToday), IsFeePayer: true},
					dtos.OnboardRole{Person: &dtos.CreatePersonRequest{FullName: "B"}, RoleType: "tenant", EffectiveFrom: dtos.NewDate(testToday), IsFeePayer: true},
				),
			},
		})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 409, appErr.StatusCode)
		require.Equal(t, utils.ErrCodeDuplicateFeePayer, appErr.Code)
	})

	t.Run("rejects a role with both person forms", func(t *testing.T) {
		err := validateOnboardRequest(dtos.OnboardBuildingRequest{
			Units: []dtos.OnboardUnit{
				onboardUnit("101", dtos.OnboardRole{
					PersonID:      &existingID,
					Person:        &dtos.CreatePersonRequest{FullName: "B"},
					RoleType:      "tenant",
					EffectiveFrom: dtos.NewDate(testToday),
				}),
			},
		})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, utils.ErrCodeValidation, appErr.Code)
	})

	t.Run("rejects an out-of-range payment config", func(t *testing.T) {
		u := onboardUnit("101")
		u.PaymentConfig = &dtos.OnboardPaymentConfig{
			MonthlyAmount: 2_000_000,
			EffectiveFrom: dtos.NewDate(testToday),
		}
		err := validateOnboardRequest(dtos.OnboardBuildingRequest{Units: []dtos.OnboardUnit{u}})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, utils.ErrCodeValidation, appErr.Code)
	})
}

func TestResolveOnboardPerson(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("existing person is referenced, not duplicated", func(t *testing.T) {
		people := newFakePersonRepo()
		personID := uuid.New()
		require.NoError(t, people.Create(ctx, &models.Person{
			ID: personID, TenantID: tenantID, FullName: "Existing",
		}))

		got, created, err := resolveOnboardPerson(ctx, people, tenantID, dtos.OnboardRole{PersonID: &personID})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, personID, got)
	})

	t.Run("inline person is created", func(t *testing.T) {
		people := newFakePersonRepo()

		got, created, err := resolveOnboardPerson(ctx, people, tenantID, dtos.OnboardRole{
			Person: &dtos.CreatePersonRequest{FullName: "New Person"},
		})
		require.NoError(t, err)
		require.True(t, created)

		p, err := people.GetByID(ctx, tenantID, got)
		require.NoError(t, err)
		require.Equal(t, "New Person", p.FullName)
	})

	t.Run("unknown person id is a 404", func(t *testing.T) {
		people := newFakePersonRepo()
		missing := uuid.New()

		_, _, err := resolveOnboardPerson(ctx, people, tenantID, dtos.OnboardRole{PersonID: &missing})
		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, 404, appErr.StatusCode)
	})
}
