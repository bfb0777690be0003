package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gestorpi/gestor-api/internal/repository"
)

const sessionKeyPrefix = "session:"

// NewClient connects to Redis with pooling options.
func NewClient(url string, poolSize, minIdleConns int) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if poolSize > 0 {
		opts.PoolSize = poolSize
	}
	if minIdleConns > 0 {
		opts.MinIdleConns = minIdleConns
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

type sessionRepository struct {
	client *redis.Client
}

// NewSessionRepository stores one key per live session. The TTL implements
// the sliding 30-minute window: Touch refreshes it on every authenticated
// request, Revoke ends the session immediately on logout.
func NewSessionRepository(client *redis.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) Create(ctx context.Context, sessionID string, accountID uuid.UUID, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKeyPrefix+sessionID, accountID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Touch(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := r.client.Expire(ctx, sessionKeyPrefix+sessionID, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to refresh session: %w", err)
	}
	return ok, nil
}

func (r *sessionRepository) Revoke(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
