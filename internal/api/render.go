package api

import (
	"errors"   // Error inspection
	"fmt"      // Message formatting
	"net/http" // HTTP status codes

	"comment_wall/internal/domain"     // Importing domain models
	"comment_wall/internal/middleware" // Session context key
	"comment_wall/internal/utils"      // Flash utilities

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// wallCacheKey is the Redis key caching the comment wall listing
const wallCacheKey = "comments:wall"

// maxMultipartMemory bounds the in-memory part of multipart parsing
const maxMultipartMemory = 8 << 20 // 8MB

// render draws a template with the logged-in flag and any pending flash message
func render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := c.Get(middleware.UsernameKey) // Session presence
	data["logged_in"] = loggedIn
	if msg := utils.PopFlash(c); msg != "" {
		data["flash"] = msg // One-shot notice from the previous request
	}
	c.HTML(http.StatusOK, name, data)
}

// currentUser loads the User record for the session username. Gated routes run
// behind RequireLogin, so a missing record means the session is stale.
func currentUser(c *gin.Context, db *gorm.DB) (*domain.User, bool) {
	username := c.GetString(middleware.UsernameKey) // Username from session
	var user domain.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		utils.Flash(c, "You need to login first.") // Stale session, ask to log in again
		c.Redirect(http.StatusFound, "/login")
		return nil, false
	}
	return &user, true
}

// parseUploadForm parses a multipart form while honoring the body size cap.
// An oversized upload is answered with HTTP 413, the flashed size message and
// a redirect to the profile page. Returns false when the request was handled.
func parseUploadForm(c *gin.Context, maxUploadMB int, fallback string) bool {
	err := c.Request.ParseMultipartForm(maxMultipartMemory)
	if err == nil {
		return true // Parsed fine
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		// Body exceeded the configured ceiling
		utils.Flash(c, fmt.Sprintf("File is too large. Maximum file size is %dMB.", maxUploadMB))
		c.Header("Location", "/profile")
		c.AbortWithStatus(http.StatusRequestEntityTooLarge) // 413 with redirect target
		return false
	}
	if errors.Is(err, http.ErrNotMultipart) {
		return true // Plain form post without a file part
	}
	// Anything else is a malformed submission
	utils.Flash(c, "Invalid form submission.")
	c.Redirect(http.StatusFound, fallback)
	return false
}
