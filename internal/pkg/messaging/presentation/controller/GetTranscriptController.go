package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/task"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
)

// GetTranscriptController returns a conversation's messages in transcript
// order, author-enriched.
type GetTranscriptController struct {
	UC *usecase.GetTranscriptUseCase
}

func NewGetTranscriptController(uc *usecase.GetTranscriptUseCase) *GetTranscriptController {
	return &GetTranscriptController{UC: uc}
}

func (h *GetTranscriptController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		conversationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || conversationID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation id"})
			return
		}
		limit, offset := pageParams(c, 100)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetTranscriptInput{
			ConversationID: conversationID,
			CallerID:       middleware.CallerID(c),
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		out := make([]task.MessageBody, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, task.NewMessageBody(m))
		}
		c.JSON(http.StatusOK, gin.H{"messages": out})
	}
}
