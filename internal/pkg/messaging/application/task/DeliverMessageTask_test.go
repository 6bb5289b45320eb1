package task

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/port"
	"github.com/Gauthier1607/squadzone/internal/infrastructure/realtime"
	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

type fakeServer struct {
	handlers map[string]qport.Handler
}

func (s *fakeServer) Register(taskType string, h qport.Handler) {
	if s.handlers == nil {
		s.handlers = make(map[string]qport.Handler)
	}
	s.handlers[taskType] = h
}

func (s *fakeServer) Run(ctx context.Context) error  { return nil }
func (s *fakeServer) Stop(ctx context.Context) error { return nil }

func TestNewDeliverMessageTaskEncodesWireShape(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := messaging.Message{
		ID:             7,
		ConversationID: 1,
		SenderID:       5,
		Text:           "hi",
		Created:        created,
		SenderName:     "alice",
		SenderAvatar:   "/assets/default-avatar.png",
	}

	tk, err := NewDeliverMessageTask(msg)
	require.NoError(t, err)
	assert.Equal(t, DeliverMessageTaskType, tk.Type)

	var body MessageBody
	require.NoError(t, json.Unmarshal(tk.Payload, &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, int64(1), body.ConversationID)
	assert.Equal(t, "alice", body.SenderName)
	assert.True(t, body.Created.Equal(created))
}

func TestDeliverHandlerDropsMalformedPayload(t *testing.T) {
	srv := &fakeServer{}
	RegisterDeliverMessageTask(srv, realtime.NewHub(), zerolog.Nop())

	h := srv.handlers[DeliverMessageTaskType]
	require.NotNil(t, h)

	// Malformed payloads are discarded, never retried.
	err := h(context.Background(), qport.Task{Type: DeliverMessageTaskType, Payload: []byte("{not json")})
	assert.NoError(t, err)
}

func TestDeliverHandlerBroadcastsWithoutSubscribers(t *testing.T) {
	srv := &fakeServer{}
	RegisterDeliverMessageTask(srv, realtime.NewHub(), zerolog.Nop())

	tk, err := NewDeliverMessageTask(messaging.Message{ID: 1, ConversationID: 9, SenderID: 5})
	require.NoError(t, err)

	// An empty room is not an error; absent sockets simply miss the frame.
	h := srv.handlers[DeliverMessageTaskType]
	assert.NoError(t, h(context.Background(), tk))
}
