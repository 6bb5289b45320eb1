package identity

import "errors"

// User is the profile record referenced by conversations and messages.
// The password hash never leaves the repository layer.
type User struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Avatar string `db:"avatar"`
}

// DefaultAvatar is assigned at registration until the user uploads one.
const DefaultAvatar = "/assets/default-avatar.png"

var (
	ErrEmailTaken         = errors.New("identity: email already registered")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrUserNotFound       = errors.New("identity: user not found")
)
