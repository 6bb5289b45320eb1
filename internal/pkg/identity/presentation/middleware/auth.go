package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	session "github.com/Gauthier1607/squadzone/internal/pkg/identity/session/port"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "squadzone_session"

const callerKey = "identity.callerID"

// RequireSession resolves the session cookie and stashes the caller's user
// id in the gin context. Requests without a valid session are rejected with
// 401 before the handler runs.
func RequireSession(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sess, err := sessions.Get(ctx, token)
		if errors.Is(err, session.ErrNoSession) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
			return
		}

		c.Set(callerKey, sess.UserID)
		c.Next()
	}
}

// CallerID returns the authenticated user id set by RequireSession.
func CallerID(c *gin.Context) int64 {
	v, ok := c.Get(callerKey)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
