package middleware

import (
	"net/http" // HTTP status codes

	"comment_wall/internal/utils" // Session and flash utilities

	"github.com/gin-gonic/gin" // Gin web framework
)

// UsernameKey is the gin context key holding the logged-in username
const UsernameKey = "username"

// SessionMiddleware resolves the signed session cookie into a username.
// A missing or invalid cookie just means the request is anonymous; gating
// happens in RequireLogin.
func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookie) // Read the session cookie
		if err != nil || token == "" {
			c.Next() // Anonymous request
			return
		}
		claims, err := utils.ParseSession(token, secret) // Verify signature and expiry
		if err != nil {
			c.Next() // Invalid or expired session, treat as anonymous
			return
		}
		c.Set(UsernameKey, claims.Username) // Store username in context
		c.Next()                            // Proceed to the next handler
	}
}

// RequireLogin gates a route on an active session; anonymous requests are
// flashed a prompt and redirected to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(UsernameKey); !ok {
			utils.Flash(c, "You need to login first.") // One-shot prompt
			c.Redirect(http.StatusFound, "/login")     // Redirect to login
			c.Abort()                                  // Stop the handler chain
			return
		}
		c.Next() // Session present, proceed
	}
}
