package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mkarlsson/storefront-backend/pkg/logger"
)

// SessionMiddleware scopes the persisted cart and customer-name slots to a
// browser session. A first visit gets a fresh uuid cookie; tabs sharing the
// cookie share the slots with last-writer-wins semantics.
type SessionMiddleware struct {
	cookieName string
	maxAge     time.Duration
}

func NewSessionMiddleware(cookieName string, maxAge time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		cookieName: cookieName,
		maxAge:     maxAge,
	}
}

// Ensure attaches the session id to the request context, minting a cookie
// when none is present.
func (m *SessionMiddleware) Ensure() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(m.cookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(m.cookieName, sessionID, int(m.maxAge.Seconds()), "/", "", false, true)
			logger.Debug("Issued new session cookie", map[string]interface{}{
				"session_id": sessionID,
			})
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionID extracts the session id from context
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return "", false
	}
	id, ok := sessionID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
