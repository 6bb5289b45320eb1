package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/application/usecase"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/persistence/repository/adapter"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/controller"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
)

// RegisterRoutes registers the identity endpoints under the given group.
// It constructs per-endpoint controllers and binds them directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, sessions session.Store, sessionTTL time.Duration) {
	users := adapter.NewPgUserRepository(pool)

	registerCtl := controller.NewRegisterController(usecase.NewRegisterUserUseCase(users, sessions, sessionTTL))
	loginCtl := controller.NewLoginController(usecase.NewLoginUseCase(users, sessions, sessionTTL))
	logoutCtl := controller.NewLogoutController(sessions)
	meCtl := controller.NewMeController(sessions, users)

	g.POST("/register", registerCtl.Handle())
	g.POST("/login", loginCtl.Handle())
	g.POST("/logout", logoutCtl.Handle())
	g.GET("/me", meCtl.Handle())
}
