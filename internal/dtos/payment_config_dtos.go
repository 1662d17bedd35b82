package dtos

type SetPaymentConfigRequest struct {
	// MonthlyAmount is in minor currency units.
	MonthlyAmount int64 `json:"monthly_amount" validate:"required,gt=0"`
	EffectiveFrom Date  `json:"effective_from"`
}
