package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/martijn/boatapi/internal/api/dto"
	"github.com/martijn/boatapi/internal/core/service"
	"github.com/martijn/boatapi/internal/infrastructure/sqldb"
	"github.com/martijn/boatapi/internal/logging"
	"github.com/martijn/boatapi/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, swagger bool) http.Handler {
	t.Helper()

	cfg := &config.Config{
		JWTSecretKey:   "server-test-secret",
		JWTAlgorithm:   "HS256",
		TokenTTL:       time.Hour,
		CORSOrigins:    config.DefaultCORSOrigins,
		AuthUsername:   "admin",
		AuthPassword:   "password",
		SwaggerEnabled: swagger,
	}

	db, err := sqldb.New(context.Background(), sqldb.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tokens, err := service.NewTokenService(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL)
	require.NoError(t, err)

	boatService := service.NewBoatService(sqldb.NewBoatRepository(db))
	authService := service.NewAuthService(service.NewCredentialVerifier(cfg.AuthUsername, cfg.AuthPassword), tokens)

	return NewServer(cfg, logging.Nop(), boatService, authService, tokens).Handler()
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()

	w := do(t, h, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"password"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Bearer", resp.Type)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestServer_BoatLifecycle(t *testing.T) {
	h := newTestServer(t, false)
	token := login(t, h)

	w := do(t, h, http.MethodPost, "/boats", token, `{"name":"Orca","description":"sail"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.BoatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	path := fmt.Sprintf("/boats/%d", created.ID)

	w = do(t, h, http.MethodGet, path, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched dto.BoatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, dto.BoatResponse{ID: created.ID, Name: "Orca", Description: "sail"}, fetched)

	w = do(t, h, http.MethodPut, path, token, `{"name":"Orca II","description":"motor"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, "/boats", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-Total-Count"))

	w = do(t, h, http.MethodDelete, path, token, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, path, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RequiresIdentity(t *testing.T) {
	h := newTestServer(t, false)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
	}{
		{"list without header", http.MethodGet, "/boats", ""},
		{"create without header", http.MethodPost, "/boats", ""},
		{"get with garbage token", http.MethodGet, "/boats/1", "garbage"},
		{"unknown path", http.MethodGet, "/nowhere", ""},
		{"swagger disabled", http.MethodGet, "/swagger/index.html", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.token, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	w := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServer_LoginFailure(t *testing.T) {
	h := newTestServer(t, false)

	w := do(t, h, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Authentication failed: Invalid credentials", resp.Error)
}

func TestServer_CORSPreflight(t *testing.T) {
	h := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodOptions, "/boats", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Swagger(t *testing.T) {
	h := newTestServer(t, true)

	w := do(t, h, http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/boats")
}
