package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	DefaultRecoveryTTL = time.Hour
	recoveryKeyPrefix  = "runanalysis-recovery||"
)

var ErrRecoveryTokenNotFound = errors.New("recovery token not found or expired")

// RecoveryTokens issues single use password recovery tokens.
type RecoveryTokens struct {
	redisClient *redis.Client
	ttl         time.Duration
	newToken    func() string
}

func NewRecoveryTokens(ttl time.Duration, redisClient *redis.Client) *RecoveryTokens {
	return &RecoveryTokens{
		redisClient: redisClient,
		ttl:         ttl,
		newToken:    func() string { return uuid.NewString() },
	}
}

func (rt *RecoveryTokens) Issue(ctx context.Context, userID int) (string, error) {
	if userID <= 0 {
		return "", ErrInvalidUserID
	}

	token := rt.newToken()
	if err := rt.redisClient.Set(ctx, recoveryKeyPrefix+token, userID, rt.ttl).Err(); err != nil {
		return "", fmt.Errorf("store recovery token: %w", err)
	}
	return token, nil
}

// Redeem returns the user id the token was issued for and invalidates the token.
func (rt *RecoveryTokens) Redeem(ctx context.Context, token string) (int, error) {
	if _, err := uuid.Parse(token); err != nil {
		return 0, ErrRecoveryTokenNotFound
	}

	key := recoveryKeyPrefix + token
	// GETDEL makes concurrent redeems of the same token race for a single winner
	val, err := rt.redisClient.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRecoveryTokenNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get recovery token: %w", err)
	}

	return parseUserID(val)
}
