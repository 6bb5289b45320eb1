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

// RegisterUserInput carries the data for a new account. Name falls back to
// the email when absent, matching the signup form's behavior.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterUserUseCase creates an account and opens a session for it.
type RegisterUserUseCase struct {
	Users      repository.UserRepository
	Sessions   session.Store
	SessionTTL time.Duration
}

func NewRegisterUserUseCase(users repository.UserRepository, sessions session.Store, ttl time.Duration) *RegisterUserUseCase {
	return &RegisterUserUseCase{Users: users, Sessions: sessions, SessionTTL: ttl}
}

// Execute hashes the password, persists the user and mints a session.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, in RegisterUserInput) (identity.User, session.Session, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return identity.User{}, session.Session{}, fmt.Errorf("email and password are required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return identity.User{}, session.Session{}, err
	}

	user, err := uc.Users.Create(ctx, name, email, string(hash), identity.DefaultAvatar)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return identity.User{}, session.Session{}, err
		}
		return identity.User{}, session.Session{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	sess, err := uc.Sessions.Create(ctx, user.ID, uc.SessionTTL)
	if err != nil {
		return identity.User{}, session.Session{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, sess, nil
}
