package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

const fkViolation = "23503"

type PgConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool}
}

// GetOrCreate is lookup-first with an upsert fallback. The UNIQUE(user_a,
// user_b) constraint makes the insert race-free: when both sides open the
// conversation at once, the losing insert returns no row and the final
// lookup picks up the winner's.
func (r *PgConversationRepository) GetOrCreate(ctx context.Context, low, high int64, now time.Time) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgConversationRepository: nil pool")
	}

	conv, err := r.getByPair(ctx, low, high)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO conversations (user_a, user_b, last_updated)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_a, user_b) DO NOTHING
		RETURNING id, user_a, user_b, last_updated
	`, low, high, now).Scan(&conv.ID, &conv.UserA, &conv.UserB, &conv.LastUpdated)
	if err == nil {
		return conv, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the first-contact race; the row exists now.
		conv, err = r.getByPair(ctx, low, high)
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflicted insert whose winner is not visible yet; the
			// caller can retry the lookup.
			return messaging.Conversation{}, messaging.ErrConversationAlreadyOpen
		}
		if err != nil {
			return messaging.Conversation{}, err
		}
		return conv, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
		return messaging.Conversation{}, messaging.ErrInvalidParticipant
	}
	return messaging.Conversation{}, err
}

func (r *PgConversationRepository) getByPair(ctx context.Context, low, high int64) (messaging.Conversation, error) {
	var conv messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_a, user_b, last_updated
		FROM conversations
		WHERE user_a = $1 AND user_b = $2
	`, low, high).Scan(&conv.ID, &conv.UserA, &conv.UserB, &conv.LastUpdated)
	return conv, err
}

func (r *PgConversationRepository) GetByID(ctx context.Context, id int64) (messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return messaging.Conversation{}, errors.New("PgConversationRepository: nil pool")
	}
	var conv messaging.Conversation
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_a, user_b, last_updated
		FROM conversations
		WHERE id = $1
	`, id).Scan(&conv.ID, &conv.UserA, &conv.UserB, &conv.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return messaging.Conversation{}, messaging.ErrConversationNotFound
	}
	if err != nil {
		return messaging.Conversation{}, err
	}
	return conv, nil
}

func (r *PgConversationRepository) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]messaging.Conversation, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_a, user_b, last_updated
		FROM conversations
		WHERE user_a = $1 OR user_b = $1
		ORDER BY last_updated DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []messaging.Conversation
	for rows.Next() {
		var conv messaging.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserA, &conv.UserB, &conv.LastUpdated); err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return convs, nil
}

// AppendMessage writes the message row and the conversation's last_updated
// in one transaction, so recency can never lag behind a durable message.
func (r *PgConversationRepository) AppendMessage(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	if r == nil || r.pool == nil {
		return messaging.Message{}, errors.New("PgConversationRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return messaging.Message{}, err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, text, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, m.ConversationID, m.SenderID, m.Text, m.Created).Scan(&m.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return messaging.Message{}, messaging.ErrConversationNotFound
		}
		return messaging.Message{}, err
	}

	ct, err := tx.Exec(ctx, `
		UPDATE conversations SET last_updated = $1 WHERE id = $2
	`, m.Created, m.ConversationID)
	if err != nil {
		return messaging.Message{}, err
	}
	if ct.RowsAffected() == 0 {
		return messaging.Message{}, messaging.ErrConversationNotFound
	}

	err = tx.QueryRow(ctx, `
		SELECT users.name, users.avatar
		FROM users
		WHERE users.id = $1
	`, m.SenderID).Scan(&m.SenderName, &m.SenderAvatar)
	if err != nil {
		return messaging.Message{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return messaging.Message{}, err
	}
	return m, nil
}

func (r *PgConversationRepository) Transcript(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgConversationRepository: nil pool")
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT messages.id, messages.conversation_id, messages.sender_id,
		       messages.text, messages.created,
		       users.name AS sender_name, users.avatar AS sender_avatar
		FROM messages
		JOIN users ON users.id = messages.sender_id
		WHERE messages.conversation_id = $1
		ORDER BY messages.created ASC, messages.id ASC
		LIMIT $2 OFFSET $3
	`, conversationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []messaging.Message
	for rows.Next() {
		var m messaging.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Text, &m.Created, &m.SenderName, &m.SenderAvatar); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}
