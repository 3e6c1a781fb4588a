package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/jobboard/internal/domain"
)

// SessionRegistry records which sessions are live. A token whose session is not
// registered is treated as revoked.
type SessionRegistry interface {
	Register(ctx context.Context, sess domain.Session, expiresAt time.Time) error
	Lookup(ctx context.Context, sessionID string) (domain.UserID, bool, error)
	Revoke(ctx context.Context, sessionID string) error
}

// RedisSessionRegistry stores sessions as session:<id> -> user id with a TTL
type RedisSessionRegistry struct {
	client *redis.Client
}

var _ SessionRegistry = (*RedisSessionRegistry)(nil)

// NewRedisSessionRegistry creates a registry backed by client
func NewRedisSessionRegistry(client *redis.Client) *RedisSessionRegistry {
	return &RedisSessionRegistry{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func (r *RedisSessionRegistry) Register(ctx context.Context, sess domain.Session, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("auth: session %s already expired", sess.SessionID)
	}
	return r.client.Set(ctx, sessionKey(sess.SessionID), sess.UserID.String(), ttl).Err()
}

func (r *RedisSessionRegistry) Lookup(ctx context.Context, sessionID string) (domain.UserID, bool, error) {
	val, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(strings.TrimSpace(val))
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("auth: corrupt session %s: %w", sessionID, err)
	}
	return userID, true, nil
}

func (r *RedisSessionRegistry) Revoke(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}
