package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/boatapi/internal/api/dto"
	"github.com/martijn/boatapi/internal/api/middleware"
	"github.com/martijn/boatapi/internal/core/domain"
	"github.com/martijn/boatapi/internal/core/repository"
	"github.com/martijn/boatapi/internal/core/service"
	"github.com/martijn/boatapi/internal/infrastructure/sqldb"
	"github.com/martijn/boatapi/internal/logging"
)

// testEnv holds all test dependencies
type testEnv struct {
	db          *sqldb.DB
	router      *gin.Engine
	boatRepo    repository.BoatRepository
	tokens      *service.TokenService
	boatHandler *BoatHandler
	authHandler *AuthHandler
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Use in-memory SQLite database
	db, err := sqldb.New(context.Background(), sqldb.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	boatRepo := sqldb.NewBoatRepository(db)

	tokens, err := service.NewTokenService("handler-test-secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}

	boatService := service.NewBoatService(boatRepo)
	authService := service.NewAuthService(service.NewCredentialVerifier("admin", "password"), tokens)

	boatHandler := NewBoatHandler(boatService)
	authHandler := NewAuthHandler(authService)

	// Setup gin router in test mode
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandlerMiddleware(logging.Nop()))

	// Register routes without auth middleware
	router.POST("/auth/login", authHandler.Login)
	router.GET("/boats", boatHandler.ListBoats)
	router.GET("/boats/:id", boatHandler.GetBoat)
	router.POST("/boats", boatHandler.CreateBoat)
	router.PUT("/boats/:id", boatHandler.UpdateBoat)
	router.DELETE("/boats/:id", boatHandler.DeleteBoat)
	router.GET("/health", Health)

	env := &testEnv{
		db:          db,
		router:      router,
		boatRepo:    boatRepo,
		tokens:      tokens,
		boatHandler: boatHandler,
		authHandler: authHandler,
	}
	t.Cleanup(env.cleanup)
	return env
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// seedBoats stores the named boats in order and returns them with their ids
func (env *testEnv) seedBoats(t *testing.T, names ...string) []*domain.Boat {
	t.Helper()

	boats := make([]*domain.Boat, 0, len(names))
	for _, name := range names {
		boat, err := env.boatRepo.Save(context.Background(), domain.NewBoat(name, name+" description"))
		if err != nil {
			t.Fatalf("failed to seed boat %s: %v", name, err)
		}
		boats = append(boats, boat)
	}
	return boats
}

// makeRequest performs a request with an optional JSON body and returns the response
func (env *testEnv) makeRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// parseBoatResponse parses the response body into BoatResponse
func parseBoatResponse(t *testing.T, w *httptest.ResponseRecorder) dto.BoatResponse {
	t.Helper()

	var resp dto.BoatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseBoatListResponse parses the response body into a list of boats
func parseBoatListResponse(t *testing.T, w *httptest.ResponseRecorder) []dto.BoatResponse {
	t.Helper()

	var resp []dto.BoatResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseValidationResponse parses the response body into a field to message map
func parseValidationResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ValidationErrorResponse {
	t.Helper()

	var resp dto.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse validation response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
