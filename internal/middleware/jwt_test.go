package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/utils"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateToken(userID, "ana@example.com", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "ana@example.com", testJWTConfig())
	require.NoError(t, err)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other-secret"})
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute}
	token, err := GenerateToken(uuid.New(), "ana@example.com", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, cfg)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := GenerateToken(userID, "ana@example.com", cfg)
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotEmail string
	next := func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = utils.GetUserIDFromContext(r.Context())
		gotEmail, _ = utils.GetEmailFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}
	handler := AuthMiddleware(next, cfg)

	r := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "ana@example.com", gotEmail)
}

func TestAuthMiddlewareRejectsBadHeader(t *testing.T) {
	cfg := testJWTConfig()
	handler := AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}, cfg)

	for _, header := range []string{"", "Bearer", "Token abc", "Bearer not-a-token"} {
		r := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		handler(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	token, err := GenerateResetToken(userID, "ana@example.com", "123456", cfg)
	require.NoError(t, err)

	claims, err := ValidateResetToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "123456", claims.Code)

	// An access token is not a reset token.
	access, err := GenerateToken(userID, "ana@example.com", cfg)
	require.NoError(t, err)
	_, err = ValidateResetToken(access, cfg)
	assert.Error(t, err)
}
