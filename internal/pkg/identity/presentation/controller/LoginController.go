package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gauthier1607/squadzone/internal/pkg/identity/application/usecase"
	identity "github.com/Gauthier1607/squadzone/internal/pkg/identity/domain"
)

// LoginController handles credential checks and session creation.
type LoginController struct {
	UC *usecase.LoginUseCase
}

func NewLoginController(uc *usecase.LoginUseCase) *LoginController {
	return &LoginController{UC: uc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email & password required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		user, sess, err := h.UC.Execute(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrInvalidCredentials):
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials"})
			case errors.Is(err, usecase.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		setSessionCookie(c, sess.Token, h.UC.SessionTTL)
		c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
	}
}
