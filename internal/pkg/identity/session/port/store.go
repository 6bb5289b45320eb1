package port

import (
	"context"
	"time"
)

// Session ties an opaque bearer token to the authenticated user for its
// lifetime. The token is the value carried by the session cookie.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
}

// Store is the session repository every authenticated operation resolves the
// caller through. Implementations must be concurrency-safe and context-aware.
type Store interface {
	// Create mints a new session for the user, valid for ttl. Zero or
	// negative ttl means no expiry.
	Create(ctx context.Context, userID int64, ttl time.Duration) (Session, error)

	// Get resolves a token to its session, or ErrNoSession if the token is
	// unknown or expired.
	Get(ctx context.Context, token string) (Session, error)

	// Delete revokes the session. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrNoSession signals an unknown or expired token in a typed way, so
// callers can distinguish "not logged in" from transport errors.
var ErrNoSession = errNoSession{}

type errNoSession struct{}

func (errNoSession) Error() string { return "session: no active session" }
