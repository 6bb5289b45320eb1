package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Gauthier1607/squadzone/internal/infrastructure/realtime"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	"github.com/Gauthier1607/squadzone/internal/pkg/messaging/application/usecase"
	messaging "github.com/Gauthier1607/squadzone/internal/pkg/messaging/domain"
)

// ConversationSocketController handles the websocket endpoint for live
// conversation updates. Sockets declare interest with join frames; new
// messages are pushed by the delivery worker through the hub. Sending
// messages stays on the HTTP endpoint.
type ConversationSocketController struct {
	hub             *realtime.Hub
	joinUC          *usecase.JoinConversationUseCase
	inflightTimeout time.Duration
}

func NewConversationSocketController(hub *realtime.Hub, joinUC *usecase.JoinConversationUseCase) *ConversationSocketController {
	return &ConversationSocketController{
		hub:             hub,
		joinUC:          joinUC,
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Cookie-based auth already ran in the middleware; cross-origin
		// pages cannot read the upgrade response, so allow all origins.
		return true
	},
}

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id,omitempty"`
}

type ackFrame struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades the request and processes frames until the client
// disconnects. The route sits behind RequireSession, so the caller identity
// is already established when the upgrade happens.
func (ctl *ConversationSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CallerID(c)

		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response.
			return
		}

		conn := realtime.NewConnection(userID, ws)
		ctl.hub.Attach(conn)
		conn.Start()
		defer func() {
			ctl.hub.Detach(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 16)
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		ctl.ack(conn, ackFrame{Type: "connected"})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}

			var frame inboundFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				ctl.replyError(conn, "bad_request", "invalid payload")
				continue
			}

			switch frame.Type {
			case "join":
				ctl.handleJoin(c, conn, frame)
			case "leave":
				ctl.handleLeave(conn, frame)
			default:
				ctl.replyError(conn, "unsupported_type", "unknown frame type")
			}
		}
	}
}

func (ctl *ConversationSocketController) handleJoin(c *gin.Context, conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID <= 0 {
		ctl.replyError(conn, "bad_request", "conversation_id is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ctl.inflightTimeout)
	defer cancel()

	err := ctl.joinUC.Execute(ctx, usecase.JoinConversationInput{
		ConversationID: frame.ConversationID,
		UserID:         conn.UserID,
	})
	switch {
	case err == nil:
	case errors.Is(err, messaging.ErrNotParticipant):
		ctl.replyError(conn, "forbidden", "user is not a participant in this conversation")
		return
	case errors.Is(err, messaging.ErrConversationNotFound):
		ctl.replyError(conn, "not_found", "conversation not found")
		return
	default:
		ctl.replyError(conn, "internal_error", "join failed")
		return
	}

	ctl.hub.Join(frame.ConversationID, conn)
	ctl.ack(conn, ackFrame{Type: "joined", ConversationID: frame.ConversationID})
}

func (ctl *ConversationSocketController) handleLeave(conn *realtime.Connection, frame inboundFrame) {
	if frame.ConversationID <= 0 {
		ctl.replyError(conn, "bad_request", "conversation_id is required")
		return
	}
	ctl.hub.Leave(frame.ConversationID, conn)
	ctl.ack(conn, ackFrame{Type: "left", ConversationID: frame.ConversationID})
}

func (ctl *ConversationSocketController) ack(conn *realtime.Connection, frame ackFrame) {
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}

func (ctl *ConversationSocketController) replyError(conn *realtime.Connection, code string, message string) {
	frame := errorFrame{Type: "error", Code: code, Error: message}
	if payload, err := json.Marshal(frame); err == nil {
		_ = conn.Send(payload)
	}
}
