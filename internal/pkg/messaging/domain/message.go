package messaging

import "time"

// Message is an immutable entry in a conversation's transcript. Text may be
// empty; the row is still a valid message. SenderName/SenderAvatar are
// denormalized from the user directory for presentation and are filled by
// the repository's join, never stored on the message row.
type Message struct {
	ID             int64     `db:"id"`
	ConversationID int64     `db:"conversation_id"`
	SenderID       int64     `db:"sender_id"`
	Text           string    `db:"text"`
	Created        time.Time `db:"created"`

	SenderName   string `db:"sender_name"`
	SenderAvatar string `db:"sender_avatar"`
}
