package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	qport "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/port"
	"github.com/Gauthier1607/squadzone/internal/infrastructure/realtime"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/persistence/repository/adapter"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/presentation/controller"
)

// RegisterRoutes registers the conversation/message endpoints under the
// given group. Every route requires an authenticated session.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, sessions session.Store, q qport.Client, hub *realtime.Hub, logger zerolog.Logger) {
	repo := adapter.NewPgConversationRepository(pool)

	openCtl := controller.NewOpenConversationController(repo)
	listCtl := controller.NewListConversationsController(usecase.NewListConversationsUseCase(repo))
	transcriptCtl := controller.NewGetTranscriptController(usecase.NewGetTranscriptUseCase(repo))
	sendCtl := controller.NewSendMessageController(usecase.NewSendMessageUseCase(repo), q, logger)
	socketCtl := controller.NewConversationSocketController(hub, usecase.NewJoinConversationUseCase(repo))

	authed := g.Group("", middleware.RequireSession(sessions))

	authed.POST("/conversations", openCtl.Handle())
	authed.GET("/conversations", listCtl.Handle())
	authed.GET("/conversations/:id/messages", transcriptCtl.Handle())
	authed.POST("/conversations/:id/messages", sendCtl.Handle())

	// Websocket endpoint for live conversation updates
	authed.GET("/conversations/ws", socketCtl.Handle())
}
