// file: router/router_test.go

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-auth-api/config"
	"go-auth-api/handler"
	"go-auth-api/router"
	"go-auth-api/service"

	"github.com/stretchr/testify/assert"
)

// newTestRouter wires real services with no storage behind them; routes
// that never reach a repository are exercisable this way.
func newTestRouter() http.Handler {
	tokenService := service.NewTokenService(config.JWTConfig{
		SecretKey:  "router-test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
	authService := service.NewAuthService(nil, nil, tokenService, nil, config.AuthConfig{})
	authHandler := handler.NewAuthHandler(authService, nil, false)
	userHandler := handler.NewUserHandler(nil)
	return router.NewRouter(authHandler, userHandler, authService)
}

func TestHealthCheck_Routing(t *testing.T) {
	r := newTestRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	expectedBody := `{"status":"API is healthy and running"}`
	assert.JSONEq(t, expectedBody, rr.Body.String())
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	r := newTestRouter()

	for _, route := range []struct{ method, path string }{
		{"POST", "/api/logout"},
		{"POST", "/api/password/change"},
		{"GET", "/api/me"},
	} {
		req, _ := http.NewRequest(route.method, route.path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "route %s should be protected", route.path)
	}
}

func TestProtectedRoutes_RejectGarbageToken(t *testing.T) {
	r := newTestRouter()

	req, _ := http.NewRequest("GET", "/api/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRefreshRoute_RequiresToken(t *testing.T) {
	r := newTestRouter()

	req, _ := http.NewRequest("POST", "/api/token/refresh", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
