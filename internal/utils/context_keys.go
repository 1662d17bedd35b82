package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ContextKeyTenantID   contextKey = "tenant_id"
	ContextKeyAuthUserID contextKey = "auth_user_id"
)

// TenantIDFromContext returns the tenant scope set by the auth
// middleware. Handlers must treat a missing tenant as a hard failure;
// nothing below the controller layer runs unscoped.
func TenantIDFromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(ContextKeyTenantID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrMissingTenant
	}
	return id, nil
}

// AuthUserIDFromContext returns the authenticated subject, or nil when
// the claim was absent. Attribution fields tolerate nil.
func AuthUserIDFromContext(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(ContextKeyAuthUserID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return nil
	}
	return &id
}
