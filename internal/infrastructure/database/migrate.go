package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is applied at startup. Statements are idempotent so repeated boots
// are safe.
//
// conversations holds one row per unordered user pair: user_a < user_b is
// enforced so both directions of contact land on the same row, and the
// unique constraint closes the concurrent first-contact race at the store.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '/assets/default-avatar.png'
	)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		id BIGSERIAL PRIMARY KEY,
		user_a BIGINT NOT NULL REFERENCES users (id),
		user_b BIGINT NOT NULL REFERENCES users (id),
		last_updated TIMESTAMPTZ NOT NULL,
		CHECK (user_a < user_b),
		UNIQUE (user_a, user_b)
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		conversation_id BIGINT NOT NULL REFERENCES conversations (id),
		sender_id BIGINT NOT NULL REFERENCES users (id),
		text TEXT NOT NULL DEFAULT '',
		created TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS messages_conversation_created_idx
		ON messages (conversation_id, created, id)`,
	`CREATE INDEX IF NOT EXISTS conversations_last_updated_idx
		ON conversations (last_updated DESC)`,
}

// Migrate brings the database schema up to date.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate: %w", err)
		}
	}
	return nil
}
