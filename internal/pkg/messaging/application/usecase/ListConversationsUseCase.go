package usecase

import (
	"context"
	"fmt"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/port"
)

// ListConversationsInput selects a page of the caller's conversations.
type ListConversationsInput struct {
	UserID int64
	Limit  int
	Offset int
}

// ListConversationsUseCase returns the caller's conversations ordered by
// most recent activity.
type ListConversationsUseCase struct {
	Repo repository.ConversationRepository
}

func NewListConversationsUseCase(repo repository.ConversationRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]messaging.Conversation, error) {
	if in.UserID <= 0 {
		return nil, messaging.ErrInvalidParticipant
	}
	convs, err := uc.Repo.ListForUser(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
