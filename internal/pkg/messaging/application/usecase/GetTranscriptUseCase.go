package usecase

import (
	"context"
	"errors"
	"fmt"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/port"
)

// GetTranscriptInput selects a page of a conversation's transcript for an
// authenticated caller.
type GetTranscriptInput struct {
	ConversationID int64
	CallerID       int64
	Limit          int
	Offset         int
}

// GetTranscriptUseCase returns a conversation's messages in transcript
// order. Only the two participants may read it.
type GetTranscriptUseCase struct {
	Repo repository.ConversationRepository
}

func NewGetTranscriptUseCase(repo repository.ConversationRepository) *GetTranscriptUseCase {
	return &GetTranscriptUseCase{Repo: repo}
}

func (uc *GetTranscriptUseCase) Execute(ctx context.Context, in GetTranscriptInput) ([]messaging.Message, error) {
	if in.ConversationID <= 0 {
		return nil, fmt.Errorf("conversationId is required")
	}

	conv, err := uc.Repo.GetByID(ctx, in.ConversationID)
	if err != nil {
		if errors.Is(err, messaging.ErrConversationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.HasParticipant(in.CallerID) {
		return nil, messaging.ErrNotParticipant
	}

	msgs, err := uc.Repo.Transcript(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
