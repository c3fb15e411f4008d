package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VIAJAPLUS_BACK-END/internal/config"
	"VIAJAPLUS_BACK-END/internal/dto"
	"VIAJAPLUS_BACK-END/internal/store/memorystore"
)

func newAuthHandler() (*AuthHandler, *memorystore.Store) {
	st := memorystore.New()
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour},
	}
	return NewAuthHandler(st, cfg), st
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	h, _ := newAuthHandler()

	w := postJSON(t, h.Register, "/api/auth/register", `{"email":"ana@example.com","password":"secret1","display_name":"Ana"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ana@example.com", reg.User.Email)

	w = postJSON(t, h.Login, "/api/auth/login", `{"email":"ana@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postJSON(t, h.Login, "/api/auth/login", `{"email":"ana@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	h, _ := newAuthHandler()

	w := postJSON(t, h.Register, "/api/auth/register", `{"email":"ana@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Register, "/api/auth/register", `{"email":"ANA@Example.com","password":"secret2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginIsCaseInsensitiveOnEmail(t *testing.T) {
	h, _ := newAuthHandler()

	w := postJSON(t, h.Register, "/api/auth/register", `{"email":"ana@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, h.Login, "/api/auth/login", `{"email":"Ana@EXAMPLE.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h, _ := newAuthHandler()

	w := postJSON(t, h.Register, "/api/auth/register", `{"email":"ana@example.com","password":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
