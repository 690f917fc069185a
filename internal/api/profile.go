package api

import (
	"net/http" // HTTP status codes

	"comment_wall/internal/utils" // Upload and flash utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ProfileHandler renders the current user's profile
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Load the session user
		if !ok {
			return // Redirected to login
		}
		render(c, "profile.html", gin.H{"user": user})
	}
}

// EditProfileFormHandler renders the profile edit form
func EditProfileFormHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		render(c, "edit_profile.html", gin.H{"user": user})
	}
}

// EditProfileHandler applies a bio change and an optional new profile picture.
// Validation runs before anything is written: a rejected picture aborts the
// whole edit, bio included, since the record is committed once at the end.
func EditProfileHandler(db *gorm.DB, uploadDir string, maxUploadMB int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Load the session user
		if !ok {
			return
		}
		// Parse the form, answering oversized bodies with 413
		if !parseUploadForm(c, maxUploadMB, "/edit_profile") {
			return
		}
		bio := c.PostForm("bio") // New bio, overwrites unconditionally on commit
		newPic := ""
		// Handle the optional profile picture
		if file, err := c.FormFile("profile_pic"); err == nil && file.Filename != "" {
			// Extension and declared MIME type must both pass
			if !utils.AllowedFile(file.Filename, file.Header.Get("Content-Type")) {
				utils.Flash(c, "File type not allowed.")
				c.Redirect(http.StatusFound, "/edit_profile")
				return
			}
			name, err := utils.SaveUpload(file, uploadDir) // Write and rename into place
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"username": user.Username, // Session user
					"filename": file.Filename, // Uploaded filename
					"error":    err.Error(),   // Error message
				}).Error("Failed to save profile picture")
				utils.Flash(c, "Could not save the uploaded file.")
				c.Redirect(http.StatusFound, "/edit_profile")
				return
			}
			newPic = name
		}
		// Single commit after validation
		user.Bio = bio
		if newPic != "" {
			// The previous picture file stays in the upload directory until
			// the retention sweeper ages it out
			user.ProfilePic = newPic
		}
		if err := db.Save(user).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"username": user.Username, // Session user
				"error":    err.Error(),   // Error message
			}).Error("Failed to update profile")
			utils.Flash(c, "Profile update failed. Please try again.")
			c.Redirect(http.StatusFound, "/edit_profile")
			return
		}
		// Log successful update
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
			"new_pic":  newPic,        // New picture filename, empty if unchanged
		}).Info("Profile updated")
		utils.Flash(c, "Profile updated successfully")
		c.Redirect(http.StatusFound, "/profile")
	}
}
