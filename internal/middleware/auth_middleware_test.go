package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/veranda-pm/billing-service/internal/utils"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func runAuth(t *testing.T, pub *rsa.PublicKey, authHeader string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var captured *http.Request
	handler := Auth(pub)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/buildings", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, captured
}

func TestAuth(t *testing.T) {
	utils.InitLogger("billing-service-test")

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pub := &key.PublicKey

	tenantID := uuid.New()
	authUserID := uuid.New()

	validClaims := Claims{
		TenantID: tenantID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authUserID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("valid token populates the context", func(t *testing.T) {
		rec, captured := runAuth(t, pub, "Bearer "+signToken(t, key, validClaims))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, captured)

		gotTenant, err := utils.TenantIDFromContext(captured.Context())
		require.NoError(t, err)
		require.Equal(t, tenantID, gotTenant)

		gotUser := utils.AuthUserIDFromContext(captured.Context())
		require.NotNil(t, gotUser)
		require.Equal(t, authUserID, *gotUser)
	})

	t.Run("missing header is a 401", func(t *testing.T) {
		rec, captured := runAuth(t, pub, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, captured)
		require.Contains(t, rec.Body.String(), utils.ErrCodeUnauthorized)
	})

	t.Run("expired token reports token_expired", func(t *testing.T) {
		expired := validClaims
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

		rec, captured := runAuth(t, pub, "Bearer "+signToken(t, key, expired))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, captured)
		require.Contains(t, rec.Body.String(), utils.ErrCodeTokenExpired)
	})

	t.Run("token without tenant is a 401", func(t *testing.T) {
		noTenant := validClaims
		noTenant.TenantID = ""

		rec, captured := runAuth(t, pub, "Bearer "+signToken(t, key, noTenant))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, captured)
	})

	t.Run("token signed with another key is a 401", func(t *testing.T) {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		rec, captured := runAuth(t, pub, "Bearer "+signToken(t, otherKey, validClaims))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, captured)
	})

	t.Run("HMAC token is refused even with the right shape", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims)
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		rec, captured := runAuth(t, pub, "Bearer "+signed)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Nil(t, captured)
	})
}
