package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by SessionStore.Get for unset keys.
var ErrKeyNotFound = errors.New("session key not found")

// SessionStore is the durable key-value slot owned by one client (one
// browser). Values are opaque strings.
type SessionStore interface {
	Get(ctx context.Context, clientID, key string) (string, error)
	Set(ctx context.Context, clientID, key, value string) error
	Delete(ctx context.Context, clientID string, keys ...string) error
}
