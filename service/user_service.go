package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-auth-api/common"
	"go-auth-api/logger"
	"go-auth-api/model"
	"go-auth-api/repository"
	"time"
)

const profileCacheTTL = 10 * time.Minute

// UserService serves profile reads for authenticated users, utilizing a
// cache-aside strategy.
type UserService struct {
	userRepo repository.IUserRepository
	cache    ICacheClient
}

func NewUserService(userRepo repository.IUserRepository, cache ICacheClient) *UserService {
	return &UserService{userRepo: userRepo, cache: cache}
}

func profileCacheKey(userID int) string {
	return fmt.Sprintf("profile:%d", userID)
}

// GetProfile returns the public profile for a user id taken from a
// validated access token.
func (s *UserService) GetProfile(userID int) (*model.User, error) {
	cacheKey := profileCacheKey(userID)
	ctx := context.Background()

	// 1. Try to get data from the cache.
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var user model.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	// 2. Cache miss. Fetch from the database.
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The token outlived the account.
			return nil, common.NewAuthError(common.KindUnauthorized, "account no longer exists", err)
		}
		return nil, common.NewAuthError(common.KindInternal, "could not load profile", err)
	}

	// 3. Store the result in the cache for future requests. The password
	// hash never serializes, its JSON tag excludes it.
	if s.cache != nil {
		if data, err := json.Marshal(user); err == nil {
			s.cache.Set(ctx, cacheKey, data, profileCacheTTL)
		}
	}

	return user, nil
}

// InvalidateProfile drops the cached profile, called after credential
// mutations.
func (s *UserService) InvalidateProfile(userID int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(context.Background(), profileCacheKey(userID)).Err(); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate profile cache")
	}
}
