package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projtrack-app/projtrack-backend/internal/auth"
	"github.com/projtrack-app/projtrack-backend/internal/auth/session"
)

// SessionAuth resolves the session cookie to an identity and stores it in the
// request context. Requests without a live session are redirected to /login
// rather than rejected, so the browser lands on the login form.
func SessionAuth(sessions *session.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			redirectToLogin(c)
			return
		}

		identity, err := sessions.Load(c.Request.Context(), token)
		if err == session.ErrSessionNotFound {
			// Stale cookie: clear it so the browser stops resending it.
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			redirectToLogin(c)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "session store unavailable"})
			c.Abort()
			return
		}

		auth.SetIdentity(c, identity)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
