package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/port"
)

// SendMessageInput carries the data to append one message. Empty text is a
// valid message.
type SendMessageInput struct {
	ConversationID int64
	SenderID       int64
	Text           string
}

// SendMessageUseCase appends a message to a conversation's transcript. The
// conversation must exist and the sender must be one of its two
// participants; both are checked before any write. The message insert and
// the last_updated touch share one timestamp and one transaction.
//
// Realtime delivery is NOT part of this use case: callers publish the
// returned message after the append succeeds, so a fanout failure can never
// affect the persistence outcome.
type SendMessageUseCase struct {
	Repo repository.ConversationRepository
}

func NewSendMessageUseCase(repo repository.ConversationRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (messaging.Message, error) {
	if in.ConversationID <= 0 || in.SenderID <= 0 {
		return messaging.Message{}, fmt.Errorf("conversationId and senderId are required")
	}

	conv, err := uc.Repo.GetByID(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return messaging.Message{}, err
		}
		return messaging.Message{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.SenderID) {
		return messaging.Message{}, messaging.ErrNotParticipant
	}

	msg := messaging.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Text:           in.Text,
		Created:        time.Now().UTC(),
	}

	saved, err := uc.Repo.AppendMessage(ctx, msg)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return messaging.Message{}, err
		}
		return messaging.Message{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}
