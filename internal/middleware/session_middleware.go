package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionIDKey     = "session_id"
	sessionCookie    = "cart_session"
	sessionHeader    = "X-Session-ID"
	sessionCookieAge = 7 * 24 * 3600
)

// SessionMiddleware gives every guest browser a stable session ID so its
// cart and wishlist survive page loads. The ID travels in a cookie, with the
// X-Session-ID header as the override for clients that block cookies.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(sessionHeader)
		if sessionID == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				sessionID = cookie
			}
		}

		// Reject anything that is not a UUID we issued
		if sessionID != "" {
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = ""
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sessionID, sessionCookieAge, "/", "", false, true)
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID extracts the guest session ID from context
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
