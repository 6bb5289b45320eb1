package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	identity "github.com/Gauthier1607/squadzone/internal/pkg/identity/domain"
)

const uniqueViolation = "23505"

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, name, email, passwordHash, avatar string) (identity.User, error) {
	if r == nil || r.pool == nil {
		return identity.User{}, errors.New("PgUserRepository: nil pool")
	}
	if avatar == "" {
		avatar = identity.DefaultAvatar
	}
	var u identity.User
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, avatar)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, avatar
	`, name, email, passwordHash, avatar).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return identity.User{}, identity.ErrEmailTaken
		}
		return identity.User{}, err
	}
	return u, nil
}

func (r *PgUserRepository) FindByEmail(ctx context.Context, email string) (identity.User, string, error) {
	if r == nil || r.pool == nil {
		return identity.User{}, "", errors.New("PgUserRepository: nil pool")
	}
	var (
		u    identity.User
		hash string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, avatar, password
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.User{}, "", identity.ErrUserNotFound
	}
	if err != nil {
		return identity.User{}, "", err
	}
	return u, hash, nil
}

func (r *PgUserRepository) FindByID(ctx context.Context, id int64) (identity.User, error) {
	if r == nil || r.pool == nil {
		return identity.User{}, errors.New("PgUserRepository: nil pool")
	}
	var u identity.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, avatar
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar)
	if errors.Is(err, pgx.ErrNoRows) {
		return identity.User{}, identity.ErrUserNotFound
	}
	if err != nil {
		return identity.User{}, err
	}
	return u, nil
}
