package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
)

// LogoutController revokes the caller's session and clears the cookie.
type LogoutController struct {
	Sessions session.Store
}

func NewLogoutController(sessions session.Store) *LogoutController {
	return &LogoutController{Sessions: sessions}
}

func (h *LogoutController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			// Revocation is best-effort; the cookie is cleared either way.
			_ = h.Sessions.Delete(ctx, token)
		}
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
