package auth

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	redisClient *redis.Client
}

func NewLoginChecker(redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		redisClient: redisClient,
	}
}

// IsLogged returns the id of the user owning the session token.
// Expired sessions are removed by redis, so a missing key means not logged.
func (c *LoginChecker) IsLogged(ctx context.Context, token string) (int, bool, error) {
	sessionKey := sessionKeyPrefix + token
	val, err := c.redisClient.Get(ctx, sessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := parseUserID(val)
	if err != nil {
		return 0, false, err
	}

	return userID, true, nil
}
