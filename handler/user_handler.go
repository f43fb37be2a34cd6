package handler

import (
	"encoding/json"
	"go-auth-api/common"
	"go-auth-api/model"
	"net/http"
)

// IUserService defines the profile surface the handlers consume.
type IUserService interface {
	GetProfile(userID int) (*model.User, error)
	InvalidateProfile(userID int)
}

type UserHandler struct {
	service IUserService
}

func NewUserHandler(service IUserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me godoc
// @Summary      Return the authenticated user's profile
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} model.User
// @Failure      401 {object} common.AppError
// @Router       /api/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, ok := r.Context().Value(UserIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid user ID in token", nil)
	}

	user, err := h.service.GetProfile(userID)
	if err != nil {
		return toAppError(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
	return nil
}
