package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-auth-api/common"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	newProtected := func(authService IAuthService) (http.Handler, *int) {
		var seenUserID int
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := r.Context().Value(UserIDKey).(int); ok {
				seenUserID = userID
			}
			w.WriteHeader(http.StatusOK)
		})
		return AuthMiddleware(authService)(next), &seenUserID
	}

	t.Run("valid bearer token", func(t *testing.T) {
		mockAuth := new(mockAuthService)
		mockAuth.On("ValidateAccess", "good-jwt").Return(7, nil).Once()

		protected, seenUserID := newProtected(mockAuth)
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", "Bearer good-jwt")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 7, *seenUserID)
		mockAuth.AssertExpectations(t)
	})

	t.Run("valid cookie token", func(t *testing.T) {
		mockAuth := new(mockAuthService)
		mockAuth.On("ValidateAccess", "cookie-jwt").Return(7, nil).Once()

		protected, _ := newProtected(mockAuth)
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "cookie-jwt"})
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockAuth.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		mockAuth := new(mockAuthService)
		protected, _ := newProtected(mockAuth)
		req := httptest.NewRequest("GET", "/api/me", nil)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockAuth.AssertNotCalled(t, "ValidateAccess")
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		mockAuth := new(mockAuthService)
		protected, _ := newProtected(mockAuth)
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockAuth.AssertNotCalled(t, "ValidateAccess")
	})

	t.Run("expired token", func(t *testing.T) {
		mockAuth := new(mockAuthService)
		mockAuth.On("ValidateAccess", "expired-jwt").
			Return(0, common.NewAuthError(common.KindUnauthorized, "invalid or expired token", nil)).Once()

		protected, _ := newProtected(mockAuth)
		req := httptest.NewRequest("GET", "/api/me", nil)
		req.Header.Set("Authorization", "Bearer expired-jwt")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockAuth.AssertExpectations(t)
	})
}
