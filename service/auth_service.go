package service

import (
	"context"
	"errors"
	"go-auth-api/common"
	"go-auth-api/config"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// invalidCredentialsMessage is shared by every credential failure so a
// caller cannot tell a missing account from a wrong password.
const invalidCredentialsMessage = "invalid credentials"

// AuthService owns the session lifecycle: registration, login, refresh
// token rotation, logout and password changes. All failures come back as
// *common.AuthError values.
type AuthService struct {
	userRepo    repository.IUserRepository
	sessionRepo repository.ISessionRepository
	tokens      *TokenService
	limiter     *LoginLimiter
	cfg         config.AuthConfig
}

func NewAuthService(userRepo repository.IUserRepository, sessionRepo repository.ISessionRepository, tokens *TokenService, limiter *LoginLimiter, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		limiter:     limiter,
		cfg:         cfg,
	}
}

// Register creates a new account with a freshly hashed credential. No
// session is created; the caller still has to log in.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, error) {
	hashedPassword, err := s.HashPassword(req.Password)
	if err != nil {
		return nil, common.NewAuthError(common.KindInternal, "could not process registration", err)
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    hashedPassword,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, common.NewAuthError(common.KindConflict, "an account with that email or username already exists", err)
		}
		return nil, common.NewAuthError(common.KindInternal, "could not create user", err)
	}

	logger.Log.WithField("user_id", user.ID).Info("New user registered")
	return user, nil
}

// Login verifies the credential and starts a session, replacing whatever
// refresh token was stored before. A missing account and a wrong password
// produce the identical error; the unknown-account path still performs a
// hash computation so both paths cost the same.
func (s *AuthService) Login(identifier, password string, now time.Time) (*TokenPair, error) {
	if s.limiter != nil {
		if err := s.limiter.Allow(context.Background(), identifier); err != nil {
			if errors.Is(err, ErrLoginRateLimited) {
				return nil, common.NewAuthError(common.KindRateLimited, "too many login attempts, try again later", err)
			}
			// A limiter outage must not lock every user out.
			logger.Log.WithError(err).Warn("Login limiter unavailable, continuing without throttle")
		}
	}

	user, err := s.userRepo.GetUserByIdentifier(identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.HashPassword(password)
			return nil, common.NewAuthError(common.KindInvalidCredentials, invalidCredentialsMessage, nil)
		}
		return nil, common.NewAuthError(common.KindInternal, "could not load credential", err)
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return nil, common.NewAuthError(common.KindInvalidCredentials, invalidCredentialsMessage, nil)
	}

	pair, err := s.mintPair(user.ID, now)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.ReplaceRefreshToken(user.ID, pair.RefreshToken); err != nil {
		return nil, common.NewAuthError(common.KindInternal, "could not store session", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(context.Background(), identifier); err != nil {
			logger.Log.WithError(err).Warn("Failed to reset login attempt counter")
		}
	}

	logger.Log.WithField("user_id", user.ID).Info("User logged in")
	return pair, nil
}

// Refresh rotates the session's refresh token. The presented token must
// validate as a refresh token and must still be the stored one; the swap is
// a storage-level compare-and-set, so a replayed or concurrently used token
// loses and gets Unauthorized.
func (s *AuthService) Refresh(presentedToken string, now time.Time) (*TokenPair, error) {
	claims, err := s.tokens.Validate(presentedToken, model.TokenClassRefresh, now)
	if err != nil {
		return nil, common.NewAuthError(common.KindUnauthorized, "invalid refresh token", err)
	}

	pair, err := s.mintPair(claims.UserID, now)
	if err != nil {
		return nil, err
	}

	swapped, err := s.sessionRepo.CompareAndSetRefreshToken(claims.UserID, presentedToken, pair.RefreshToken)
	if err != nil {
		return nil, common.NewAuthError(common.KindInternal, "could not rotate session", err)
	}
	if !swapped {
		logger.Log.WithField("user_id", claims.UserID).Warn("Refresh token reuse detected")
		return nil, common.NewAuthError(common.KindUnauthorized, "invalid refresh token", nil)
	}

	return pair, nil
}

// Logout clears the stored refresh token. Logging out twice is not an
// error. Already-issued access tokens stay valid until they expire.
func (s *AuthService) Logout(userID int) error {
	if err := s.sessionRepo.ClearRefreshToken(userID); err != nil {
		return common.NewAuthError(common.KindInternal, "could not clear session", err)
	}
	logger.Log.WithField("user_id", userID).Info("User logged out")
	return nil
}

// ChangePassword re-derives the stored hash after verifying the old
// password. It does not touch the session; callers wanting to end other
// sessions call Logout separately.
func (s *AuthService) ChangePassword(userID int, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return common.NewAuthError(common.KindInvalidCredentials, invalidCredentialsMessage, nil)
		}
		return common.NewAuthError(common.KindInternal, "could not load credential", err)
	}

	if !s.CheckPasswordHash(oldPassword, user.Password) {
		return common.NewAuthError(common.KindInvalidCredentials, invalidCredentialsMessage, nil)
	}

	if newPassword == oldPassword {
		return common.NewAuthError(common.KindNoOp, "new password must differ from the old one", nil)
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return common.NewAuthError(common.KindInternal, "could not process password change", err)
	}

	if err := s.userRepo.UpdatePassword(userID, hashedPassword); err != nil {
		return common.NewAuthError(common.KindInternal, "could not store new password", err)
	}

	logger.Log.WithField("user_id", userID).Info("User changed password")
	return nil
}

// ValidateAccess checks a presented access token and returns the user it
// belongs to. Pure token validation, no session lookup: access tokens are
// self-contained and not individually revocable before expiry.
func (s *AuthService) ValidateAccess(presentedToken string, now time.Time) (int, error) {
	claims, err := s.tokens.Validate(presentedToken, model.TokenClassAccess, now)
	if err != nil {
		return 0, common.NewAuthError(common.KindUnauthorized, "invalid or expired token", err)
	}
	return claims.UserID, nil
}

func (s *AuthService) mintPair(userID int, now time.Time) (*TokenPair, error) {
	accessToken, err := s.tokens.Mint(userID, model.TokenClassAccess, now)
	if err != nil {
		return nil, common.NewAuthError(common.KindInternal, "could not mint access token", err)
	}
	refreshToken, err := s.tokens.Mint(userID, model.TokenClassRefresh, now)
	if err != nil {
		return nil, common.NewAuthError(common.KindInternal, "could not mint refresh token", err)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
