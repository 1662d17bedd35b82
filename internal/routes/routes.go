package routes

const (
	// Health
	Health = "/health"

	// Buildings
	Buildings       = "/api/v1/buildings"
	Building        = "/api/v1/buildings/{buildingId}"
	BuildingUnits   = "/api/v1/buildings/{buildingId}/units"
	BuildingOnboard = "/api/v1/buildings/{buildingId}/onboard"

	// Units
	Units                    = "/api/v1/units"
	Unit                     = "/api/v1/units/{unitId}"
	UnitRoles                = "/api/v1/units/{unitId}/roles"
	UnitRole                 = "/api/v1/units/{unitId}/roles/{roleId}"
	UnitPaymentConfig        = "/api/v1/units/{unitId}/payment-config"
	UnitPaymentConfigHistory = "/api/v1/units/{unitId}/payment-config/history"

	// People
	People = "/api/v1/people"
	Person = "/api/v1/people/{personId}"

	// Charges and payments
	Charges              = "/api/v1/charges"
	ChargesGenerate      = "/api/v1/charges/generate"
	ChargeGenerationLogs = "/api/v1/charges/generation-logs"
	ChargePayments       = "/api/v1/charges/{chargeId}/payments"
	Payment              = "/api/v1/payments/{paymentId}"

	// Dashboard
	BillingSnapshot = "/api/v1/billing/snapshot"
)
