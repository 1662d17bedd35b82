package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/veranda-pm/billing-service/internal/utils"
)

// Auth validates the Bearer token and stashes the tenant scope and auth
// user id in the request context. Requests without a usable tenant_id
// claim never reach a handler.
func Auth(publicKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Missing or malformed Authorization header", nil)
				return
			}

			claims, err := parseToken(strings.TrimPrefix(header, "Bearer "), publicKey)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeTokenExpired,
						"Token has expired", nil)
					return
				}
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Invalid token", nil, err)
				return
			}

			tenantID, err := uuid.Parse(claims.TenantID)
			if err != nil || tenantID == uuid.Nil {
				utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
					"Token carries no tenant", nil)
				return
			}

			ctx := context.WithValue(r.Context(), utils.ContextKeyTenantID, tenantID)
			if sub := claims.Subject; sub != "" {
				if authUserID, err := uuid.Parse(sub); err == nil {
					ctx = context.WithValue(ctx, utils.ContextKeyAuthUserID, authUserID)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
