package repository

import (
	"context"
	"time"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

// ConversationRepository defines persistence for the messaging core: the
// conversation directory, the append-only message store and the activity
// tracker. Implementations own the atomicity of compound writes.
type ConversationRepository interface {
	// GetOrCreate returns the conversation for the canonical pair
	// (low, high), creating it with last_updated = now on first contact.
	// Safe under concurrent first contact from both sides: callers always
	// observe exactly one row per pair.
	GetOrCreate(ctx context.Context, low, high int64, now time.Time) (messaging.Conversation, error)

	// GetByID fetches a conversation, or messaging.ErrConversationNotFound.
	GetByID(ctx context.Context, id int64) (messaging.Conversation, error)

	// ListForUser returns the user's conversations, most recently active
	// first.
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]messaging.Conversation, error)

	// AppendMessage inserts the message and advances the conversation's
	// last_updated to m.Created within one transaction, then returns the
	// row enriched with the sender's name and avatar. Appending to an
	// unknown conversation fails with messaging.ErrConversationNotFound.
	AppendMessage(ctx context.Context, m messaging.Message) (messaging.Message, error)

	// Transcript returns the conversation's messages ascending by
	// (created, id), enriched with sender name/avatar.
	Transcript(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error)
}
