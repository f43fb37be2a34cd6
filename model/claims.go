package model

import "github.com/golang-jwt/jwt/v5"

// TokenClass distinguishes short-lived access tokens from long-lived
// refresh tokens. A token of one class is never accepted where the other
// is expected.
type TokenClass string

const (
	TokenClassAccess  TokenClass = "access"
	TokenClassRefresh TokenClass = "refresh"
)

type AppClaims struct {
	UserID     int        `json:"user_id"`
	TokenClass TokenClass `json:"token_class"`
	jwt.RegisteredClaims
}
