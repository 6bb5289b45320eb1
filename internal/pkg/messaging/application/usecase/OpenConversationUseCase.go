package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/port"
)

// OpenConversationInput identifies the two sides of a conversation; the
// caller's id comes from the session, never from the request body.
type OpenConversationInput struct {
	CallerID int64
	OtherID  int64
}

// OpenConversationUseCase resolves or lazily creates the single conversation
// for an unordered user pair. Idempotent: repeated calls from either side
// return the same row.
type OpenConversationUseCase struct {
	Repo repository.ConversationRepository
}

func NewOpenConversationUseCase(repo repository.ConversationRepository) *OpenConversationUseCase {
	return &OpenConversationUseCase{Repo: repo}
}

func (uc *OpenConversationUseCase) Execute(ctx context.Context, in OpenConversationInput) (messaging.Conversation, error) {
	low, high, err := messaging.CanonicalPair(in.CallerID, in.OtherID)
	if err != nil {
		return messaging.Conversation{}, err
	}

	conv, err := uc.Repo.GetOrCreate(ctx, low, high, time.Now().UTC())
	if err != nil {
		if errors.Is(err, messaging.ErrInvalidParticipant) || errors.Is(err, messaging.ErrConversationAlreadyOpen) {
			return messaging.Conversation{}, err
		}
		return messaging.Conversation{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return conv, nil
}
