package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
)

// RedisStore is a session repository backed by Redis. Sessions live under
// "session:<token>" keys with their TTL enforced by Redis itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a RedisStore for the given Redis URL and verifies
// connectivity with a ping.
func NewRedisStore(url string) (*RedisStore, error) {
	if url == "" {
		return nil, errors.New("redis: url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	c := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &RedisStore{client: c}, nil
}

var _ port.Store = (*RedisStore)(nil)

type sessionRecord struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func sessionKey(token string) string { return "session:" + token }

func (s *RedisStore) Create(ctx context.Context, userID int64, ttl time.Duration) (port.Session, error) {
	now := time.Now().UTC()
	rec := sessionRecord{UserID: userID, CreatedAt: now}
	raw, err := json.Marshal(rec)
	if err != nil {
		return port.Session{}, err
	}

	token := uuid.NewString()
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, sessionKey(token), raw, ttl).Err(); err != nil {
		return port.Session{}, err
	}
	return port.Session{Token: token, UserID: userID, CreatedAt: now}, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (port.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return port.Session{}, port.ErrNoSession
	}
	if err != nil {
		return port.Session{}, err
	}
	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return port.Session{}, err
	}
	return port.Session{Token: token, UserID: rec.UserID, CreatedAt: rec.CreatedAt}, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
