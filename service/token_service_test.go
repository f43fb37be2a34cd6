// file: service/token_service_test.go

package service

import (
	"testing"
	"time"

	"go-auth-api/config"
	"go-auth-api/model"

	"github.com/stretchr/testify/assert"
)

func newTestTokenService() *TokenService {
	return NewTokenService(config.JWTConfig{
		SecretKey:  "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := newTestTokenService()
	now := time.Now()

	for _, class := range []model.TokenClass{model.TokenClassAccess, model.TokenClassRefresh} {
		minted, err := tokens.Mint(42, class, now)
		assert.NoError(t, err)
		assert.NotEmpty(t, minted)

		claims, err := tokens.Validate(minted, class, now)
		assert.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, class, claims.TokenClass)
	}
}

func TestTokenService_Expired(t *testing.T) {
	tokens := newTestTokenService()
	now := time.Now()

	minted, err := tokens.Mint(42, model.TokenClassAccess, now)
	assert.NoError(t, err)

	// Still valid one minute before expiry.
	_, err = tokens.Validate(minted, model.TokenClassAccess, now.Add(14*time.Minute))
	assert.NoError(t, err)

	// Rejected one minute after expiry.
	_, err = tokens.Validate(minted, model.TokenClassAccess, now.Add(16*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_WrongClass(t *testing.T) {
	tokens := newTestTokenService()
	now := time.Now()

	refresh, err := tokens.Mint(42, model.TokenClassRefresh, now)
	assert.NoError(t, err)

	_, err = tokens.Validate(refresh, model.TokenClassAccess, now)
	assert.ErrorIs(t, err, ErrTokenWrongClass)
}

func TestTokenService_Malformed(t *testing.T) {
	tokens := newTestTokenService()
	now := time.Now()

	_, err := tokens.Validate("not.a.token", model.TokenClassAccess, now)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	// A token signed with a different secret must not verify.
	other := NewTokenService(config.JWTConfig{SecretKey: "other-secret", AccessTTL: time.Minute, RefreshTTL: time.Minute})
	foreign, err := other.Mint(42, model.TokenClassAccess, now)
	assert.NoError(t, err)

	_, err = tokens.Validate(foreign, model.TokenClassAccess, now)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_DistinctMintsSameInstant(t *testing.T) {
	tokens := newTestTokenService()
	now := time.Now()

	first, err := tokens.Mint(42, model.TokenClassRefresh, now)
	assert.NoError(t, err)
	second, err := tokens.Mint(42, model.TokenClassRefresh, now)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}
