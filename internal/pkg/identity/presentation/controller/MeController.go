package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	identity "github.com/Gauthier1607/squadzone/internal/pkg/identity/domain"
	repository "github.com/Gauthier1607/squadzone/internal/pkg/identity/persistence/repository/port"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
)

// MeController returns the current user, or {"user": null} when the request
// carries no valid session. This endpoint never 401s so the client can probe
// login state without special-casing errors.
type MeController struct {
	Sessions session.Store
	Users    repository.UserRepository
}

func NewMeController(sessions session.Store, users repository.UserRepository) *MeController {
	return &MeController{Sessions: sessions, Users: users}
}

func (h *MeController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(middleware.SessionCookie)
		if err != nil || token == "" {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		sess, err := h.Sessions.Get(ctx, token)
		if errors.Is(err, session.ErrNoSession) {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		user, err := h.Users.FindByID(ctx, sess.UserID)
		if errors.Is(err, identity.ErrUserNotFound) {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
	}
}
