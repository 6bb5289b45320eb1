package task

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	qport "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/port"
	"github.com/Gauthier1607/squadzone/internal/infrastructure/realtime"
	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

// DeliverMessageTaskType is the queue task name for fanning out a persisted
// message to the sockets joined to its conversation's channel.
const DeliverMessageTaskType = "messaging:deliver"

// DeliverQueue is the logical queue delivery tasks land on.
const DeliverQueue = "messaging"

// MessageBody is the wire shape of a message, shared by transcript
// responses and realtime frames.
type MessageBody struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Text           string    `json:"text"`
	Created        time.Time `json:"created"`
	SenderName     string    `json:"sender_name"`
	SenderAvatar   string    `json:"sender_avatar"`
}

// NewMessageBody maps a domain message onto its wire shape.
func NewMessageBody(m messaging.Message) MessageBody {
	return MessageBody{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Text:           m.Text,
		Created:        m.Created,
		SenderName:     m.SenderName,
		SenderAvatar:   m.SenderAvatar,
	}
}

// conversationFrame is the outbound socket frame carrying a new message.
type conversationFrame struct {
	Type    string      `json:"type"`
	Message MessageBody `json:"message"`
}

// NewDeliverMessageTask builds the queue task for a freshly persisted
// message. Enqueue it with MaxRetry < 0: delivery is at-most-once and a
// retried broadcast would duplicate frames for connected sockets.
func NewDeliverMessageTask(m messaging.Message) (qport.Task, error) {
	payload, err := json.Marshal(NewMessageBody(m))
	if err != nil {
		return qport.Task{}, err
	}
	return qport.Task{Type: DeliverMessageTaskType, Payload: payload}, nil
}

// RegisterDeliverMessageTask binds the delivery handler to the worker
// server. The handler broadcasts to the in-process hub; sockets on rooms of
// other conversations never see the frame.
func RegisterDeliverMessageTask(srv qport.Server, hub *realtime.Hub, logger zerolog.Logger) {
	srv.Register(DeliverMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var body MessageBody
		if err := json.Unmarshal(t.Payload, &body); err != nil {
			// Malformed payload: drop, never retry.
			logger.Warn().Err(err).Msg("discarding malformed delivery task")
			return nil
		}

		frame, err := json.Marshal(conversationFrame{Type: "conv_message", Message: body})
		if err != nil {
			return err
		}

		delivered := hub.Broadcast(body.ConversationID, frame)
		logger.Debug().
			Int64("conversation", body.ConversationID).
			Int64("message", body.ID).
			Int("delivered", delivered).
			Msg("message fanned out")
		return nil
	})
}
