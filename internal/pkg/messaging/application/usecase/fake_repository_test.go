package usecase

import (
	"context"
	"sync"
	"time"

	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

// fakeConversationRepo is an in-memory stand-in for the Pg adapter. It keeps
// the same observable contract: one row per canonical pair, transactional
// append+touch, transcript order by (created, id).
type fakeConversationRepo struct {
	mu         sync.Mutex
	nextConvID int64
	nextMsgID  int64
	convs      map[int64]messaging.Conversation
	byPair     map[[2]int64]int64
	msgs       map[int64][]messaging.Message
	names      map[int64]string

	failWith error // when set, every call fails with this error
}

func newFakeRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		convs:  make(map[int64]messaging.Conversation),
		byPair: make(map[[2]int64]int64),
		msgs:   make(map[int64][]messaging.Message),
		names:  map[int64]string{5: "alice", 9: "bob", 12: "carol"},
	}
}

func (f *fakeConversationRepo) GetOrCreate(ctx context.Context, low, high int64, now time.Time) (messaging.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return messaging.Conversation{}, f.failWith
	}
	if id, ok := f.byPair[[2]int64{low, high}]; ok {
		return f.convs[id], nil
	}
	f.nextConvID++
	conv := messaging.Conversation{ID: f.nextConvID, UserA: low, UserB: high, LastUpdated: now}
	f.convs[conv.ID] = conv
	f.byPair[[2]int64{low, high}] = conv.ID
	return conv, nil
}

func (f *fakeConversationRepo) GetByID(ctx context.Context, id int64) (messaging.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return messaging.Conversation{}, f.failWith
	}
	conv, ok := f.convs[id]
	if !ok {
		return messaging.Conversation{}, messaging.ErrConversationNotFound
	}
	return conv, nil
}

func (f *fakeConversationRepo) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]messaging.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []messaging.Conversation
	for _, conv := range f.convs {
		if conv.HasParticipant(userID) {
			out = append(out, conv)
		}
	}
	// last_updated descending
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LastUpdated.After(out[i].LastUpdated) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeConversationRepo) AppendMessage(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return messaging.Message{}, f.failWith
	}
	conv, ok := f.convs[m.ConversationID]
	if !ok {
		return messaging.Message{}, messaging.ErrConversationNotFound
	}
	f.nextMsgID++
	m.ID = f.nextMsgID
	m.SenderName = f.names[m.SenderID]
	m.SenderAvatar = "/assets/default-avatar.png"
	f.msgs[m.ConversationID] = append(f.msgs[m.ConversationID], m)
	conv.LastUpdated = m.Created
	f.convs[m.ConversationID] = conv
	return m, nil
}

func (f *fakeConversationRepo) Transcript(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	msgs := f.msgs[conversationID]
	out := make([]messaging.Message, len(msgs))
	copy(out, msgs)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeConversationRepo) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, msgs := range f.msgs {
		n += len(msgs)
	}
	return n
}
