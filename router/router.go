package router

import (
	"go-auth-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-auth-api/docs"
)

func NewRouter(authHandler *handler.AuthHandler, userHandler *handler.UserHandler, authService handler.IAuthService) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.Handle("/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("/login", handler.ErrorHandlingMiddleware(authHandler.Login))

	// Refresh authenticates with the refresh token itself, not an access
	// token, so it stays outside the auth middleware.
	mux.Handle("/api/token/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	authRequired := handler.AuthMiddleware(authService)
	mux.Handle("/api/logout", authRequired(handler.ErrorHandlingMiddleware(authHandler.Logout)))
	mux.Handle("/api/password/change", authRequired(handler.ErrorHandlingMiddleware(authHandler.ChangePassword)))
	mux.Handle("/api/me", authRequired(handler.ErrorHandlingMiddleware(userHandler.Me)))

	return mux
}
