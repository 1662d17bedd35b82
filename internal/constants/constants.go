package constants

const (
	AppName = "billing-service"

	// DefaultPageSize is the fixed page size of every cursor-paged list.
	DefaultPageSize = 25

	// MonthlyAmountCeiling caps a payment config's monthly amount, in
	// minor currency units.
	MonthlyAmountCeiling = 1_000_000

	// ConfigBackdateYears bounds how far in the past a new payment
	// config's effective_from may lie.
	ConfigBackdateYears = 1

	// ChargeDueDay is the day of month charges fall due. The generation
	// procedure owns this value too; keep the two in sync.
	ChargeDueDay = 25

	NotesMaxLen = 500

	// MonthlyGenerationCronSpec fires shortly after midnight on the 1st,
	// mirroring the database-side schedule it stands in for.
	MonthlyGenerationCronSpec = "10 0 1 * *"
)
