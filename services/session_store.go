package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/food-ordering/repository"
	"gorm.io/gorm"
)

const revokedSessionPrefix = "session:revoked:"

// SessionStore remembers logged-out session ids until their token expires.
type SessionStore interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NewSessionStore prefers Redis and falls back to the revoked_sessions table.
func NewSessionStore(rdb *redis.Client, db *gorm.DB) SessionStore {
	if rdb != nil {
		return NewRedisSessionStore(rdb)
	}
	return NewDBSessionStore(repository.NewSessionRepository(db))
}

type RedisSessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, now: time.Now}
}

func (s *RedisSessionStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedSessionPrefix+jti, 1, ttl).Err()
}

func (s *RedisSessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedSessionPrefix+jti).Result()
	return n > 0, err
}

type DBSessionStore struct {
	repo *repository.SessionRepository
}

func NewDBSessionStore(repo *repository.SessionRepository) *DBSessionStore {
	return &DBSessionStore{repo: repo}
}

func (s *DBSessionStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	return s.repo.Revoke(ctx, jti, expiresAt)
}

func (s *DBSessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.repo.IsRevoked(ctx, jti)
}
