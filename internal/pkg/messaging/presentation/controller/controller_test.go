package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/port"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/task"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

// ---- fakes over the ports ----

type memRepo struct {
	mu         sync.Mutex
	nextConvID int64
	nextMsgID  int64
	convs      map[int64]messaging.Conversation
	byPair     map[[2]int64]int64
	msgs       map[int64][]messaging.Message
}

func newMemRepo() *memRepo {
	return &memRepo{
		convs:  make(map[int64]messaging.Conversation),
		byPair: make(map[[2]int64]int64),
		msgs:   make(map[int64][]messaging.Message),
	}
}

func (r *memRepo) GetOrCreate(ctx context.Context, low, high int64, now time.Time) (messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byPair[[2]int64{low, high}]; ok {
		return r.convs[id], nil
	}
	r.nextConvID++
	conv := messaging.Conversation{ID: r.nextConvID, UserA: low, UserB: high, LastUpdated: now}
	r.convs[conv.ID] = conv
	r.byPair[[2]int64{low, high}] = conv.ID
	return conv, nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[id]
	if !ok {
		return messaging.Conversation{}, messaging.ErrConversationNotFound
	}
	return conv, nil
}

func (r *memRepo) ListForUser(ctx context.Context, userID int64, limit, offset int) ([]messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.Conversation
	for _, conv := range r.convs {
		if conv.HasParticipant(userID) {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (r *memRepo) AppendMessage(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conv, ok := r.convs[m.ConversationID]
	if !ok {
		return messaging.Message{}, messaging.ErrConversationNotFound
	}
	r.nextMsgID++
	m.ID = r.nextMsgID
	m.SenderName = "user"
	m.SenderAvatar = "/assets/default-avatar.png"
	r.msgs[m.ConversationID] = append(r.msgs[m.ConversationID], m)
	conv.LastUpdated = m.Created
	r.convs[m.ConversationID] = conv
	return m, nil
}

func (r *memRepo) Transcript(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.msgs[conversationID]
	out := make([]messaging.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (r *memRepo) messageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, msgs := range r.msgs {
		n += len(msgs)
	}
	return n
}

type memSessions struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func newMemSessions() *memSessions {
	return &memSessions{tokens: make(map[string]int64)}
}

func (s *memSessions) grant(token string, userID int64) {
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
}

func (s *memSessions) Create(ctx context.Context, userID int64, ttl time.Duration) (session.Session, error) {
	return session.Session{}, nil
}

func (s *memSessions) Get(ctx context.Context, token string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return session.Session{}, session.ErrNoSession
	}
	return session.Session{Token: token, UserID: userID}, nil
}

func (s *memSessions) Delete(ctx context.Context, token string) error { return nil }
func (s *memSessions) Close() error                                   { return nil }

type memQueue struct {
	mu    sync.Mutex
	tasks []qport.Task
}

func (q *memQueue) Enqueue(ctx context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	q.mu.Lock()
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()
	return "task-id", nil
}

func (q *memQueue) Close() error { return nil }

func (q *memQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// ---- harness ----

type harness struct {
	router   *gin.Engine
	repo     *memRepo
	sessions *memSessions
	queue    *memQueue
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newMemRepo()
	sessions := newMemSessions()
	queue := &memQueue{}

	r := gin.New()
	api := r.Group("/api", middleware.RequireSession(sessions))
	api.POST("/conversations", NewOpenConversationController(repo).Handle())
	api.GET("/conversations", NewListConversationsController(usecase.NewListConversationsUseCase(repo)).Handle())
	api.GET("/conversations/:id/messages", NewGetTranscriptController(usecase.NewGetTranscriptUseCase(repo)).Handle())
	api.POST("/conversations/:id/messages", NewSendMessageController(usecase.NewSendMessageUseCase(repo), queue, zerolog.Nop()).Handle())

	return &harness{router: r, repo: repo, sessions: sessions, queue: queue}
}

func (h *harness) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/conversations/1/messages", "", `{"text":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, h.repo.messageCount(), "no row may be inserted")
	assert.Equal(t, 0, h.queue.count(), "nothing may be published")
}

func TestOpenConversationCanonicalAcrossInitiators(t *testing.T) {
	h := newHarness(t)
	h.sessions.grant("tok-5", 5)
	h.sessions.grant("tok-9", 9)

	w := h.do(http.MethodPost, "/api/conversations", "tok-5", `{"otherId":9}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var first struct {
		Conversation struct {
			ID    int64 `json:"id"`
			UserA int64 `json:"user_a"`
			UserB int64 `json:"user_b"`
		} `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, int64(5), first.Conversation.UserA)
	assert.Equal(t, int64(9), first.Conversation.UserB)

	// Same pair from the other side resolves to the same conversation.
	w = h.do(http.MethodPost, "/api/conversations", "tok-9", `{"otherId":5}`)
	require.Equal(t, http.StatusOK, w.Code)

	var second struct {
		Conversation struct {
			ID int64 `json:"id"`
		} `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first.Conversation.ID, second.Conversation.ID)
}

func TestOpenConversationValidation(t *testing.T) {
	h := newHarness(t)
	h.sessions.grant("tok-5", 5)

	w := h.do(http.MethodPost, "/api/conversations", "tok-5", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/conversations", "tok-5", `{"otherId":5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendAndReadTranscript(t *testing.T) {
	h := newHarness(t)
	h.sessions.grant("tok-5", 5)
	h.sessions.grant("tok-9", 9)

	w := h.do(http.MethodPost, "/api/conversations", "tok-5", `{"otherId":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/api/conversations/1/messages", "tok-5", `{"text":"hi"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = h.do(http.MethodPost, "/api/conversations/1/messages", "tok-9", `{"text":"hey"}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 2, h.queue.count(), "each persisted message publishes one delivery task")
	for _, tk := range h.queue.tasks {
		assert.Equal(t, task.DeliverMessageTaskType, tk.Type)
	}

	w = h.do(http.MethodGet, "/api/conversations/1/messages", "tok-5", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Messages []task.MessageBody `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "hi", resp.Messages[0].Text)
	assert.Equal(t, "hey", resp.Messages[1].Text)
	assert.False(t, resp.Messages[1].Created.Before(resp.Messages[0].Created))
}

func TestSendEmptyTextPersists(t *testing.T) {
	h := newHarness(t)
	h.sessions.grant("tok-5", 5)
	h.sessions.grant("tok-9", 9)

	w := h.do(http.MethodPost, "/api/conversations", "tok-5", `{"otherId":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/api/conversations/1/messages", "tok-5", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message task.MessageBody `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "", resp.Message.Text)
	assert.NotZero(t, resp.Message.ID)
}

func TestSendToUnknownConversationIs404(t *testing.T) {
	h := newHarness(t)
	h.sessions.grant("tok-5", 5)

	w := h.do(http.MethodPost, "/api/conversations/42/messages", "tok-5", `{"text":"anyone?"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, h.queue.count())
}

func TestOutsiderIsForbidden(t *testing.T) {
	h := newHarness(t)
	h.sessions.grant("tok-5", 5)
	h.sessions.grant("tok-12", 12)

	w := h.do(http.MethodPost, "/api/conversations", "tok-5", `{"otherId":9}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = h.do(http.MethodPost, "/api/conversations/1/messages", "tok-12", `{"text":"hi"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(http.MethodGet, "/api/conversations/1/messages", "tok-12", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListConversationsRequiresSession(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/conversations", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	h.sessions.grant("tok-5", 5)
	w = h.do(http.MethodGet, "/api/conversations", "tok-5", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
