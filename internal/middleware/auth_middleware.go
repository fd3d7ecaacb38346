package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studentdesk/studentdesk/internal/app/models/dto"
	"github.com/studentdesk/studentdesk/internal/session"
)

// Context keys set by the auth gate for downstream handlers.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware guards protected routes behind the session store
type AuthMiddleware struct {
	sessions   *session.Store
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *session.Store, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// RequireSession allows the request to continue only when the session cookie
// resolves to a live session; otherwise it answers 401 without invoking the
// downstream handler.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			abortUnauthorized(c)
			return
		}

		sess, ok := m.sessions.Get(token)
		if !ok {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Set(ContextUsername, sess.Username)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Unauthorized. Please login first.")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
