package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/port"
)

// JoinConversationInput validates a request to attach a socket to a
// conversation's channel.
type JoinConversationInput struct {
	ConversationID int64
	UserID         int64
}

// JoinConversationUseCase is the authorization guard in front of channel
// membership: only the conversation's two participants may join its room.
type JoinConversationUseCase struct {
	Repo repository.ConversationRepository
}

func NewJoinConversationUseCase(repo repository.ConversationRepository) *JoinConversationUseCase {
	return &JoinConversationUseCase{Repo: repo}
}

func (uc *JoinConversationUseCase) Execute(ctx context.Context, in JoinConversationInput) error {
	if in.ConversationID <= 0 || in.UserID <= 0 {
		return fmt.Errorf("conversation_id and user_id are required")
	}

	conv, err := uc.Repo.GetByID(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.UserID) {
		return messaging.ErrNotParticipant
	}
	return nil
}
