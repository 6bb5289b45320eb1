package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	qport "github.com/Gauthier1607/squadzone/internal/infrastructure/queue/port"
	"github.com/Gauthier1607/squadzone/internal/infrastructure/realtime"
	identityHTTP "github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/http"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
	messagingHTTP "github.com/Gauthier1607/squadzone/internal/pkg/messaging/presentation/http"
)

// RegisterRoutes mounts all API routes under /api
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, sessions session.Store, sessionTTL time.Duration, q qport.Client, hub *realtime.Hub, logger zerolog.Logger) {
	api := r.Group("/api")
	identityHTTP.RegisterRoutes(api, pool, sessions, sessionTTL)
	messagingHTTP.RegisterRoutes(api, pool, sessions, q, hub, logger)
}
