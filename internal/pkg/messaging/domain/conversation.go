package messaging

import (
	"errors"
	"time"
)

// Domain errors for conversation behaviors
var (
	ErrSelfConversation        = errors.New("messaging: conversation requires two distinct users")
	ErrInvalidParticipant      = errors.New("messaging: invalid participant id")
	ErrNotParticipant          = errors.New("messaging: user is not a participant in the conversation")
	ErrConversationNotFound    = errors.New("messaging: conversation not found")
	ErrConversationAlreadyOpen = errors.New("messaging: conversation already exists for this pair")
)

// Conversation is the canonical record for the unordered pair of users it
// connects. UserA < UserB always holds, so both directions of first contact
// resolve to the same row. LastUpdated mirrors the Created of the newest
// message and orders a user's conversation list.
type Conversation struct {
	ID          int64     `db:"id"`
	UserA       int64     `db:"user_a"`
	UserB       int64     `db:"user_b"`
	LastUpdated time.Time `db:"last_updated"`
}

// CanonicalPair normalizes two user ids into storage order. It rejects the
// degenerate cases: a user talking to themselves and non-positive ids.
func CanonicalPair(callerID, otherID int64) (low, high int64, err error) {
	if callerID <= 0 || otherID <= 0 {
		return 0, 0, ErrInvalidParticipant
	}
	if callerID == otherID {
		return 0, 0, ErrSelfConversation
	}
	if callerID < otherID {
		return callerID, otherID, nil
	}
	return otherID, callerID, nil
}

// HasParticipant tells whether userID is one of the two members.
func (c Conversation) HasParticipant(userID int64) bool {
	return userID != 0 && (c.UserA == userID || c.UserB == userID)
}

// Peer returns the other member relative to userID, or 0 when userID is not
// a participant.
func (c Conversation) Peer(userID int64) int64 {
	switch userID {
	case c.UserA:
		return c.UserB
	case c.UserB:
		return c.UserA
	default:
		return 0
	}
}
