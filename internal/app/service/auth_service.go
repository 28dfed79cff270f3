package service

import (
	"context"
	"errors"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/config"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/redis"
	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// AuthService is the admin gate. There is a single admin identity from
// configuration; a successful login mints a JWT and logout blacklists it in
// redis until its natural expiry.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error)
	Logout(ctx context.Context, token string) error
	Validate(ctx context.Context, token string) (*util.Claims, error)
}

type authService struct {
	cfg     *config.Config
	limiter *redis.LoginLimiter
}

func NewAuthService(cfg *config.Config, limiter *redis.LoginLimiter) AuthService {
	return &authService{
		cfg:     cfg,
		limiter: limiter,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.limiter != nil {
		allowed, attempts, err := s.limiter.Allow(ctx, username)
		if err != nil {
			// Redis being down must not lock admins out
			logger.Warn("Login rate limiter unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else if !allowed {
			logger.Warn("Login rate limited", map[string]interface{}{
				"username": username,
				"attempts": attempts,
			})
			return "", time.Time{}, ErrTooManyAttempts
		}
	}

	if username != s.cfg.Admin.Username || !util.VerifyPassword(s.cfg.Admin.PasswordHash, password) {
		logger.Warn("Admin login failed", map[string]interface{}{
			"username": username,
		})
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, err := util.GenerateToken(username, "admin", s.cfg.JWT.Secret, s.cfg.JWT.TokenExpiry)
	if err != nil {
		logger.Error("Failed to generate admin token", err)
		return "", time.Time{}, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			logger.Warn("Failed to reset login attempt counter", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	expiresAt := time.Now().Add(s.cfg.JWT.TokenExpiry)
	logger.Info("Admin logged in", map[string]interface{}{
		"username": username,
	})
	return token, expiresAt, nil
}

// Logout blacklists the token for its remaining lifetime
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.cfg.JWT.Secret)
	if err != nil {
		// Expired or malformed tokens need no blacklist entry
		return nil
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := redis.BlacklistToken(ctx, token, remaining); err != nil {
		logger.Error("Failed to blacklist token", err)
		return err
	}
	return nil
}

func (s *authService) Validate(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	blacklisted, err := redis.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Warn("Token blacklist check unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	} else if blacklisted {
		return nil, util.ErrInvalidToken
	}

	return claims, nil
}
