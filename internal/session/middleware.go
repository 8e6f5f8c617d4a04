package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "session.id"

// Middleware makes sure every request carries a session id cookie and exposes
// the id through ID.
func Middleware(cookieName string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err == nil {
			_, err = uuid.Parse(sid)
		}
		if err != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sid, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(contextKey, sid)
		c.Next()
	}
}

// ID returns the session id set by Middleware, or "" outside of it.
func ID(c *gin.Context) string {
	return c.GetString(contextKey)
}
