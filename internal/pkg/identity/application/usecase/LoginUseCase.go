package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	identity "github.com/Gauthier1607/squadzone/internal/pkg/identity/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/identity/persistence/repository/port"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
)

// LoginInput carries the submitted credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginUseCase checks credentials and opens a session. Unknown email and
// wrong password both collapse into ErrInvalidCredentials so the endpoint
// does not leak which one failed.
type LoginUseCase struct {
	Users      repository.UserRepository
	Sessions   session.Store
	SessionTTL time.Duration
}

func NewLoginUseCase(users repository.UserRepository, sessions session.Store, ttl time.Duration) *LoginUseCase {
	return &LoginUseCase{Users: users, Sessions: sessions, SessionTTL: ttl}
}

func (uc *LoginUseCase) Execute(ctx context.Context, in LoginInput) (identity.User, session.Session, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return identity.User{}, session.Session{}, fmt.Errorf("email and password are required")
	}

	user, hash, err := uc.Users.FindByEmail(ctx, email)
	if errors.Is(err, identity.ErrUserNotFound) {
		return identity.User{}, session.Session{}, identity.ErrInvalidCredentials
	}
	if err != nil {
		return identity.User{}, session.Session{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		return identity.User{}, session.Session{}, identity.ErrInvalidCredentials
	}

	sess, err := uc.Sessions.Create(ctx, user.ID, uc.SessionTTL)
	if err != nil {
		return identity.User{}, session.Session{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, sess, nil
}
