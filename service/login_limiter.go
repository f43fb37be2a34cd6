// file: service/login_limiter.go

package service

import (
	"context"
	"errors"
	"fmt"
	"go-auth-api/config"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ErrLoginRateLimited is returned when an identifier has exceeded the
// allowed number of login attempts inside the configured window.
var ErrLoginRateLimited = errors.New("too many login attempts")

// LoginLimiter throttles login attempts per identifier using a Redis
// counter with a sliding expiry window.
type LoginLimiter struct {
	client ICacheClient
	cfg    config.AuthConfig
}

func NewLoginLimiter(client ICacheClient, cfg config.AuthConfig) *LoginLimiter {
	return &LoginLimiter{client: client, cfg: cfg}
}

func loginAttemptsKey(identifier string) string {
	return "login_attempts:" + strings.ToLower(identifier)
}

// Allow records one attempt and reports whether the identifier is still
// under the limit.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) error {
	key := loginAttemptsKey(identifier)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to count login attempts: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cfg.LoginWindow).Err(); err != nil {
			return fmt.Errorf("failed to set login window expiry: %w", err)
		}
	}

	if count > int64(l.cfg.LoginMaxAttempts) {
		return ErrLoginRateLimited
	}

	return nil
}

// Reset clears the attempt counter, called after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) error {
	return l.client.Del(ctx, loginAttemptsKey(identifier)).Err()
}

// Interface check: the concrete Redis client satisfies ICacheClient.
var _ ICacheClient = (*redis.Client)(nil)
