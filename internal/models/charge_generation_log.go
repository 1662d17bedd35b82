package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationTrigger string

const (
	GenerationTriggerManualAPI GenerationTrigger = "manual_api"
	GenerationTriggerPgCron    GenerationTrigger = "pg_cron"
)

// ChargeGenerationLog is the append-only audit row written once per bulk
// generation invocation.
type ChargeGenerationLog struct {
	ID             uuid.UUID         `json:"id"`
	TenantID       uuid.UUID         `json:"tenant_id"`
	PeriodMonth    time.Time         `json:"period_month"`
	TriggeredBy    GenerationTrigger `json:"triggered_by"`
	ChargesCreated int               `json:"charges_created"`

	CreatedAt time.Time `json:"created_at"`
}
