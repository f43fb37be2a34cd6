package common

import (
	"encoding/json"
	"errors"
	"go-auth-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ErrorKind classifies errors produced by the service layer. Handlers map
// each kind to an HTTP status; the services themselves never see status
// codes.
type ErrorKind string

const (
	KindConflict           ErrorKind = "conflict"
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindNoOp               ErrorKind = "no_op"
	KindRateLimited        ErrorKind = "rate_limited"
	KindInternal           ErrorKind = "internal"
)

// AuthError is the typed result every service operation returns on failure.
// Nothing below the handler boundary escapes as an untyped error.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(kind ErrorKind, message string, err error) *AuthError {
	return &AuthError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// KindOf extracts the kind from an error chain. Errors that were not
// produced as an AuthError count as internal.
func KindOf(err error) ErrorKind {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Kind
	}
	return KindInternal
}

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}
