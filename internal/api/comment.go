package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes

	"comment_wall/internal/domain"     // Importing domain models
	"comment_wall/internal/middleware" // Session context key
	"comment_wall/internal/utils"      // Upload, flash and cache utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// maxCommentLen caps the text content of a comment
const maxCommentLen = 200

// AddCommentHandler appends a comment to the wall. Text and image are each
// optional, but at least one must survive validation; the timestamp is
// assigned by the store on create.
func AddCommentHandler(db *gorm.DB, cache *utils.Cache, uploadDir string, maxUploadMB int) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString(middleware.UsernameKey) // Author from session
		// Parse the form, answering oversized bodies with 413
		if !parseUploadForm(c, maxUploadMB, "/") {
			return
		}
		content := c.PostForm("content") // Optional text content
		if len(content) > maxCommentLen {
			utils.Flash(c, "Comment must be 200 characters or fewer.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		image := ""
		// Handle the optional image attachment; validation runs before the
		// empty-submission check, matching the page flow
		if file, err := c.FormFile("image"); err == nil && file.Filename != "" {
			if !utils.AllowedFile(file.Filename, file.Header.Get("Content-Type")) {
				utils.Flash(c, "File type not allowed.")
				c.Redirect(http.StatusFound, "/")
				return
			}
			name, err := utils.SaveUpload(file, uploadDir) // Write and rename into place
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"username": username,      // Author
					"filename": file.Filename, // Uploaded filename
					"error":    err.Error(),   // Error message
				}).Error("Failed to save comment image")
				utils.Flash(c, "Could not save the uploaded file.")
				c.Redirect(http.StatusFound, "/")
				return
			}
			image = name
		}
		// A comment needs text or an image
		if content == "" && image == "" {
			utils.Flash(c, "You must provide either a comment or an image.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		comment := domain.Comment{Username: username, Content: content, Image: image}
		// Append the comment; the timestamp is server-assigned on create
		if err := db.Create(&comment).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"username": username,    // Author
				"error":    err.Error(), // Error message
			}).Error("Failed to create comment")
			utils.Flash(c, "Could not post your comment. Please try again.")
			c.Redirect(http.StatusFound, "/")
			return
		}
		// Invalidate the cached wall listing after the write
		if err := cache.Delete(context.Background(), wallCacheKey); err != nil {
			logrus.WithField("error", err.Error()).Warn("Failed to invalidate wall cache")
		}
		// Log the new comment
		logrus.WithFields(logrus.Fields{
			"comment_id": comment.ID, // New comment ID
			"username":   username,   // Author
			"has_image":  image != "",
		}).Info("Comment posted")
		c.Redirect(http.StatusFound, "/")
	}
}
