package handler

import (
	"go-auth-api/common"
	"net/http"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// toAppError maps a service error kind to its HTTP status. The status
// mapping lives here, at the transport edge; services never see it.
func toAppError(err error) *common.AppError {
	switch common.KindOf(err) {
	case common.KindConflict:
		return common.NewAppError(http.StatusConflict, err.Error(), nil)
	case common.KindInvalidCredentials, common.KindUnauthorized:
		return common.NewAppError(http.StatusUnauthorized, err.Error(), nil)
	case common.KindNoOp:
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	case common.KindRateLimited:
		return common.NewAppError(http.StatusTooManyRequests, err.Error(), nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Internal server error", err)
	}
}
