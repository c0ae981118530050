package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// RedisOTPRepository keeps codes in Redis hashes that expire after retention.
// Retention must cover the validity window so that expired codes are still
// reported as expired rather than missing.
type RedisOTPRepository struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisOTPRepository creates a Redis-backed registry.
func NewRedisOTPRepository(client *redis.Client, retention time.Duration) *RedisOTPRepository {
	return &RedisOTPRepository{client: client, retention: retention}
}

func otpKey(username string) string {
	return otpKeyPrefix + username
}

func (r *RedisOTPRepository) Save(ctx context.Context, entry models.OTPEntry) error {
	key := otpKey(entry.Username)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"code", entry.Code,
			"issued_at", strconv.FormatInt(entry.IssuedAt.UnixNano(), 10),
		)
		pipe.Expire(ctx, key, r.retention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save otp for %s: %w", entry.Username, err)
	}
	return nil
}

func (r *RedisOTPRepository) Get(ctx context.Context, username string) (*models.OTPEntry, error) {
	fields, err := r.client.HGetAll(ctx, otpKey(username)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load otp for %s: %w", username, err)
	}
	if len(fields) == 0 {
		return nil, ErrOTPNotFound
	}

	issuedNanos, err := strconv.ParseInt(fields["issued_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt otp entry for %s: %w", username, err)
	}
	return &models.OTPEntry{
		Username: username,
		Code:     fields["code"],
		IssuedAt: time.Unix(0, issuedNanos),
	}, nil
}

func (r *RedisOTPRepository) Delete(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Del(ctx, otpKey(username)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete otp for %s: %w", username, err)
	}
	return n > 0, nil
}

func (r *RedisOTPRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
