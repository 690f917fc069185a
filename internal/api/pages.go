package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"comment_wall/internal/domain" // Importing domain models
	"comment_wall/internal/utils"  // Cache utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// wallCacheTTL bounds staleness of the cached wall between invalidations
const wallCacheTTL = 30 * time.Second

// HomeHandler renders the comment wall, newest first. The wall is public:
// it renders with or without a session. The listing is served from the
// cache when possible and repopulated from the store on a miss.
func HomeHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for cache operations
		var comments []domain.Comment
		// Try the cached listing first
		if found, err := cache.Get(ctx, wallCacheKey, &comments); err == nil && found {
			render(c, "index.html", gin.H{"comments": comments})
			return
		}
		// Cache miss: load from the store, newest first
		if err := db.Order("timestamp desc").Find(&comments).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to load comments")
			c.String(http.StatusInternalServerError, "Failed to load comments")
			return
		}
		// Repopulate the cache; a failure here only costs the next lookup
		if err := cache.Set(ctx, wallCacheKey, comments, wallCacheTTL); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to cache comments")
		}
		render(c, "index.html", gin.H{"comments": comments})
	}
}

// InfoHandler renders the static info page
func InfoHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "info.html", nil)
	}
}

// ContactHandler renders the static contact page
func ContactHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "contact.html", nil)
	}
}
