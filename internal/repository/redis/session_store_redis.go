package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/njprem/ExploreNusa_BackEnd/internal/repository/ports"
)

// SessionStore keeps each client's slot under "<prefix>:<clientID>:<key>".
// Keys do not expire.
type SessionStore struct {
	client *redis.Client
	prefix string
}

func NewSessionStore(client *redis.Client, prefix string) *SessionStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "explorenusa"
	}
	return &SessionStore{client: client, prefix: prefix}
}

func (s *SessionStore) Get(ctx context.Context, clientID, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(clientID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return value, nil
}

func (s *SessionStore) Set(ctx context.Context, clientID, key, value string) error {
	if err := s.client.Set(ctx, s.key(clientID, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, clientID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.key(clientID, key))
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis: delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(clientID, key string) string {
	return s.prefix + ":" + clientID + ":" + key
}

var _ ports.SessionStore = (*SessionStore)(nil)
