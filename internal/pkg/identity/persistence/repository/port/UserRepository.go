package repository

import (
	"context"

	identity "github.com/Gauthier1607/squadzone/internal/pkg/identity/domain"
)

// UserRepository defines persistence operations for user accounts. It doubles
// as the user directory other packages use to resolve display name/avatar.
type UserRepository interface {
	// Create inserts a new user and returns it with the generated id.
	// Fails with identity.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, name, email, passwordHash, avatar string) (identity.User, error)

	// FindByEmail returns the user and its password hash for credential
	// checks. Fails with identity.ErrUserNotFound for unknown emails.
	FindByEmail(ctx context.Context, email string) (identity.User, string, error)

	// FindByID resolves a user id to its profile.
	FindByID(ctx context.Context, id int64) (identity.User, error)
}
