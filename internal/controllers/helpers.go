package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/veranda-pm/billing-service/internal/utils"
)

// decodeBody parses the JSON request body into v. Unknown fields are
// tolerated; malformed JSON is not.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// pathUUID reads a UUID path variable set by the router.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// queryCursor decodes the optional cursor query parameter.
func queryCursor(r *http.Request) (*uuid.UUID, error) {
	return utils.DecodeCursor(r.URL.Query().Get("cursor"))
}

// queryMonth parses a period_month query parameter. Both YYYY-MM and
// YYYY-MM-DD are accepted; the value is normalized later anyway.
func queryMonth(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q, expected YYYY-MM", name, raw)
	}
	return t, nil
}

// queryUUID parses an optional UUID query parameter.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &id, nil
}

func respondBadRequest(w http.ResponseWriter, err error) {
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
}

func respondValidationError(w http.ResponseWriter, err error) {
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
}

// tenantFromContext pulls the tenant scope set by the auth middleware;
// its absence means the middleware did not run, which is a 401.
func tenantFromContext(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	tenantID, err := utils.TenantIDFromContext(r.Context())
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"No tenant in context", nil)
		return uuid.Nil, false
	}
	return tenantID, true
}
