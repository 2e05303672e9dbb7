package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/maelcorre/bistrot-app/store"
)

const SessionHeader = "X-Session-Token"

// SessionMiddleware resolves the caller's shopping session from the
// X-Session-Token header, creating one when the header is missing or
// stale. The token is echoed back on every response so the client can
// persist it.
func SessionMiddleware(sm *store.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sm.GetOrCreate(c.GetHeader(SessionHeader))
		c.Header(SessionHeader, session.Token)
		c.Set("session", session)
		c.Next()
	}
}
