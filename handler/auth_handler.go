package handler

import (
	"encoding/json"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/service"
	"net/http"
	"time"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// IAuthService defines the session manager surface the handlers consume.
type IAuthService interface {
	Register(req *model.RegisterRequest) (*model.User, error)
	Login(identifier, password string, now time.Time) (*service.TokenPair, error)
	Refresh(presentedToken string, now time.Time) (*service.TokenPair, error)
	Logout(userID int) error
	ChangePassword(userID int, oldPassword, newPassword string) error
	ValidateAccess(presentedToken string, now time.Time) (int, error)
}

type AuthHandler struct {
	service       IAuthService
	userService   IUserService
	secureCookies bool
}

func NewAuthHandler(authService IAuthService, userService IUserService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		service:       authService,
		userService:   userService,
		secureCookies: secureCookies,
	}
}

// Tokens travel both ways: in the JSON body for clients without cookie
// storage and as HttpOnly cookies for browsers. The refresh cookie is
// scoped to the refresh endpoint.
func (h *AuthHandler) setTokenCookies(w http.ResponseWriter, pair *service.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/api/token",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearTokenCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    "",
		Path:     "/api/token",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register godoc
// @Summary      Create a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RegisterRequest true "Registration payload"
// @Success      201 {object} model.User
// @Failure      409 {object} common.AppError
// @Router       /register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.service.Register(&req)
	if err != nil {
		return toAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
	return nil
}

// Login godoc
// @Summary      Authenticate and start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Login payload"
// @Success      200 {object} service.TokenPair
// @Failure      401 {object} common.AppError
// @Router       /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	pair, err := h.service.Login(req.Identifier, req.Password, time.Now())
	if err != nil {
		return toAppError(err)
	}

	h.setTokenCookies(w, pair)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Refresh godoc
// @Summary      Rotate the refresh token and mint a new pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RefreshRequest false "Refresh payload (optional when the cookie is present)"
// @Success      200 {object} service.TokenPair
// @Failure      401 {object} common.AppError
// @Router       /api/token/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	// Body is optional; browser clients present the cookie instead.
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	presented := req.RefreshToken
	if presented == "" {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
			presented = cookie.Value
		}
	}
	if presented == "" {
		return common.NewAppError(http.StatusUnauthorized, "refresh token is required", nil)
	}

	pair, err := h.service.Refresh(presented, time.Now())
	if err != nil {
		return toAppError(err)
	}

	h.setTokenCookies(w, pair)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Logout godoc
// @Summary      End the session
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} common.AppError
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	if err := h.service.Logout(userID); err != nil {
		return toAppError(err)
	}

	h.clearTokenCookies(w)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ChangePassword godoc
// @Summary      Change the account password
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Param        request body model.ChangePasswordRequest true "Password change payload"
// @Success      204
// @Failure      400 {object} common.AppError
// @Failure      401 {object} common.AppError
// @Router       /api/password/change [post]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	var req model.ChangePasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		return toAppError(err)
	}

	if h.userService != nil {
		h.userService.InvalidateProfile(userID)
	}

	logger.Log.WithField("user_id", userID).Info("Password change request completed")
	w.WriteHeader(http.StatusNoContent)
	return nil
}
