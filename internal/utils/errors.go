package utils

import (
	"errors"
	"net/http"
)

// Machine-checkable error codes. These are part of the API contract and
// must not be reworded; clients match on them. The spelling of
// amount_exceeds_due is historical and intentionally kept.
const (
	ErrCodeInvalidPayload = "invalid_payload"
	ErrCodeValidation     = "validation_error"
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeTokenExpired   = "token_expired"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeInternal       = "internal_server_error"

	ErrCodeDuplicateFeePayer    = "DUPLICATE_FEE_PAYER"
	ErrCodeRoleNotFound         = "ROLE_NOT_FOUND"
	ErrCodeInvalidDateRange     = "INVALID_DATE_RANGE"
	ErrCodeInvalidPaymentDate   = "INVALID_PAYMENT_DATE"
	ErrCodeChargeAlreadySettled = "CHARGE_ALREADY_SETTLED"
	ErrCodeAmountExceedsDue     = "amount_exceeds_due"
)

// Domain-level errors used by the service layer for fine-grained failure
// reasons where a full AppError is overkill.
var (
	ErrNoRowsUpdated = errors.New("no_rows_updated")
	ErrMissingTenant = errors.New("missing_tenant_id")
)

// AppError carries a status, a stable machine code and a human message
// from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(status int, code, message string) *AppError {
	return &AppError{StatusCode: status, Code: code, Message: message}
}

// WithDetails attaches a payload for the error envelope's details field.
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// HandleAppError centralizes responding to AppErrors; anything else is a
// 500 with a generic message while the real error goes to the log.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, appErr.Details, appErr.Err)
		return
	}
	RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
}
