package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	qport "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/port"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/task"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
)

// SendMessageController persists a message, then hands it to the delivery
// queue. The two steps are strictly ordered: nothing is published unless the
// write committed, and a publish failure is logged but never surfaced — the
// HTTP caller only cares that persistence succeeded.
type SendMessageController struct {
	UC     *usecase.SendMessageUseCase
	Q      qport.Client
	Logger zerolog.Logger
}

func NewSendMessageController(uc *usecase.SendMessageUseCase, q qport.Client, logger zerolog.Logger) *SendMessageController {
	return &SendMessageController{UC: uc, Q: q, Logger: logger}
}

// sendMessageRequest is the DTO for the HTTP request body. Absent text
// defaults to the empty string, which is a valid message.
type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *SendMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || conversationID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
			return
		}

		var req sendMessageRequest
		// An empty body is fine; only malformed JSON is rejected.
		if c.Request.Body != nil && c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msg, err := h.UC.Execute(ctx, usecase.SendMessageInput{
			ConversationID: conversationID,
			SenderID:       middleware.CallerID(c),
			Text:           req.Text,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		h.publish(ctx, msg.ConversationID, msg.ID, func() (qport.Task, error) {
			return task.NewDeliverMessageTask(msg)
		})

		c.JSON(http.StatusOK, gin.H{"message": task.NewMessageBody(msg)})
	}
}

// publish enqueues the delivery task after the durable write. Best-effort
// and at-most-once: no retries, failures only logged.
func (h *SendMessageController) publish(ctx context.Context, conversationID, messageID int64, build func() (qport.Task, error)) {
	t, err := build()
	if err != nil {
		h.Logger.Error().Err(err).Int64("message", messageID).Msg("encode delivery task")
		return
	}
	opts := qport.EnqueueOption{Queue: task.DeliverQueue, MaxRetry: -1}
	if _, err := h.Q.Enqueue(ctx, t, opts); err != nil {
		h.Logger.Error().Err(err).
			Int64("conversation", conversationID).
			Int64("message", messageID).
			Msg("enqueue delivery task")
	}
}
