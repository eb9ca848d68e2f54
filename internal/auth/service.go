package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/runanalysis/pkg"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "runanalysis-session||"
	tokenLength      = 35

	// set of the user's session tokens, used to revoke them all at once
	userSessionsKeyPrefix = "runanalysis-user-sessions||"
)

var ErrInvalidUserID = errors.New("invalid user id")

// Service manages login sessions. A session is a random token pointing
// to the user id, expired by redis after the TTL.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (as *Service) Login(ctx context.Context, userID int) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}

	token, err := as.RandStringFunc(tokenLength)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := as.redisClient.Set(ctx, sessionKey, userID, as.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	userSessionsKey := userSessionsKey(userID)
	if err := as.redisClient.SAdd(ctx, userSessionsKey, token).Err(); err != nil {
		return "", fmt.Errorf("track session: %w", err)
	}
	// the set outlives each of its sessions by at most one ttl
	if err := as.redisClient.Expire(ctx, userSessionsKey, as.ttl).Err(); err != nil {
		return "", fmt.Errorf("expire session set: %w", err)
	}

	return token, nil
}

// Logout removes the session, returns false if there was no such session.
func (as *Service) Logout(ctx context.Context, token string) (bool, error) {
	sessionKey := sessionKeyPrefix + token
	deleted, err := as.redisClient.Del(ctx, sessionKey).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// RevokeAll ends every session of the user.
func (as *Service) RevokeAll(ctx context.Context, userID int) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}

	userSessionsKey := userSessionsKey(userID)
	tokens, err := as.redisClient.SMembers(ctx, userSessionsKey).Result()
	if err != nil {
		return fmt.Errorf("get user sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKeyPrefix+token)
	}
	keys = append(keys, userSessionsKey)

	if err := as.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func userSessionsKey(userID int) string {
	return userSessionsKeyPrefix + strconv.Itoa(userID)
}

func parseUserID(val string) (int, error) {
	userID, err := strconv.Atoi(val)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidUserID
	}
	return userID, nil
}
