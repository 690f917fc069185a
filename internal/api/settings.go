package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"comment_wall/internal/utils" // Flash utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// AccountSettingsFormHandler renders the account settings page
func AccountSettingsFormHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db)
		if !ok {
			return
		}
		render(c, "account_settings.html", gin.H{"user": user})
	}
}

// AccountSettingsHandler updates the email and/or password. Each field present
// in the form overwrites the stored value; the password is re-hashed. No
// re-authentication challenge is required.
func AccountSettingsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c, db) // Load the session user
		if !ok {
			return
		}
		if email := c.PostForm("email"); email != "" {
			user.Email = email // Overwrite the stored email
		}
		if password := c.PostForm("password"); password != "" {
			// Re-hash the new password
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				logrus.WithField("error", err.Error()).Error("Failed to hash password")
				utils.Flash(c, "Update failed. Please try again.")
				c.Redirect(http.StatusFound, "/account-settings")
				return
			}
			user.PasswordHash = string(hash)
		}
		// Commit; an email collision hits the store's uniqueness constraint
		if err := db.Save(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.Flash(c, "Username or email already in use. Please choose a different one.")
			} else {
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,     // User ID
					"error":   err.Error(), // Error message
				}).Error("Failed to update account settings")
				utils.Flash(c, "Update failed. Please try again.")
			}
			c.Redirect(http.StatusFound, "/account-settings")
			return
		}
		// Log successful update
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("Account settings updated")
		utils.Flash(c, "Account settings updated successfully")
		c.Redirect(http.StatusFound, "/account-settings")
	}
}
