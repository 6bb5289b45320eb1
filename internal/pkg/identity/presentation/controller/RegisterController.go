package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/application/usecase"
	identity "github.com/Gauthier1607/squadzone/internal/pkg/identity/domain"
	"github.com/Gauthier1607/squadzone/internal/pkg/identity/presentation/middleware"
)

// RegisterController handles account creation (one controller per endpoint)
type RegisterController struct {
	UC *usecase.RegisterUserUseCase
}

func NewRegisterController(uc *usecase.RegisterUserUseCase) *RegisterController {
	return &RegisterController{UC: uc}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *RegisterController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email & password required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, sess, err := h.UC.Execute(ctx, usecase.RegisterUserInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		setSessionCookie(c, sess.Token, h.UC.SessionTTL)
		c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
	}
}

func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	maxAge := int(ttl / time.Second)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", false, true)
}

func userBody(u identity.User) gin.H {
	return gin.H{
		"id":     u.ID,
		"name":   u.Name,
		"email":  u.Email,
		"avatar": u.Avatar,
	}
}
