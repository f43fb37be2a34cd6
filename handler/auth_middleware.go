package handler

import (
	"context"
	"go-auth-api/common"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthMiddleware gates protected routes on a valid access token. The token
// comes from the Authorization header, or from the access cookie for
// browser clients. Validation is stateless; no session lookup happens here.
func AuthMiddleware(authService IAuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := bearerToken(r)
			if tokenString == "" {
				if cookie, err := r.Cookie(accessTokenCookie); err == nil {
					tokenString = cookie.Value
				}
			}
			if tokenString == "" {
				err := common.NewAppError(http.StatusUnauthorized, "Authorization is required", nil)
				err.Send(w)
				return
			}

			userID, err := authService.ValidateAccess(tokenString, time.Now())
			if err != nil {
				toAppError(err).Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	headerParts := strings.Split(authHeader, " ")
	if len(headerParts) != 2 || !strings.EqualFold(headerParts[0], "bearer") {
		return ""
	}
	return headerParts[1]
}
