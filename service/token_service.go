// file: service/token_service.go

package service

import (
	"errors"
	"fmt"
	"go-auth-api/config"
	"go-auth-api/logger"
	"go-auth-api/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenMalformed covers undecodable payloads and bad signatures.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenExpired is returned when validation happens after expiry.
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenWrongClass is returned when an access token is presented
	// where a refresh token is expected, or vice versa.
	ErrTokenWrongClass = errors.New("token has wrong class")
)

// TokenService mints and validates the signed tokens. The signing key and
// per-class lifetimes are fixed at construction.
type TokenService struct {
	cfg config.JWTConfig
}

func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{cfg: cfg}
}

func (s *TokenService) ttl(class model.TokenClass) time.Duration {
	if class == model.TokenClassRefresh {
		return s.cfg.RefreshTTL
	}
	return s.cfg.AccessTTL
}

// Mint produces a signed token for the user with the lifetime of the given
// class. Every token carries a unique jti, so two tokens minted in the same
// instant still serialize differently.
func (s *TokenService) Mint(userID int, class model.TokenClass, now time.Time) (string, error) {
	claims := &model.AppClaims{
		UserID:     userID,
		TokenClass: class,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(class))),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("Failed to sign token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// Validate parses and verifies a serialized token against the expected
// class, evaluating expiry at the supplied time.
func (s *TokenService) Validate(tokenString string, expected model.TokenClass, now time.Time) (*model.AppClaims, error) {
	claims := &model.AppClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.TokenClass != expected {
		return nil, ErrTokenWrongClass
	}

	return claims, nil
}
