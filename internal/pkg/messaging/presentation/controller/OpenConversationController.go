package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/port"
)

// OpenConversationController handles conversation create-or-fetch (one
// controller per endpoint). The response does not distinguish the two
// branches; either way the caller gets the pair's single conversation.
type OpenConversationController struct {
	UC *usecase.OpenConversationUseCase
}

func NewOpenConversationController(repo repository.ConversationRepository) *OpenConversationController {
	return &OpenConversationController{UC: usecase.NewOpenConversationUseCase(repo)}
}

type openConversationRequest struct {
	OtherID int64 `json:"otherId"`
}

func (h *OpenConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req openConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.OtherID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "otherId required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.OpenConversationInput{
			CallerID: middleware.CallerID(c),
			OtherID:  req.OtherID,
		})
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"conversation": conversationBody(conv)})
	}
}

func conversationBody(conv messaging.Conversation) gin.H {
	return gin.H{
		"id":           conv.ID,
		"user_a":       conv.UserA,
		"user_b":       conv.UserB,
		"last_updated": conv.LastUpdated,
	}
}
