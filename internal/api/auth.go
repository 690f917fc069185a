package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Session lifetime

	"comment_wall/internal/domain" // Importing domain models
	"comment_wall/internal/utils"  // Session and flash utilities

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// sessionTTL is how long a login stays valid
const sessionTTL = 24 * time.Hour

// RegisterFormHandler renders the registration form
func RegisterFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "register.html", nil)
	}
}

// RegisterHandler creates a new account from the submitted form
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username") // Requested username
		email := c.PostForm("email")       // Requested email
		password := c.PostForm("password") // Plaintext password, hashed below
		// All three fields are required
		if username == "" || email == "" || password == "" {
			utils.Flash(c, "All fields are required.")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		// Reject if the username or email is already taken (exact match)
		var existing domain.User
		err := db.Where("username = ? OR email = ?", username, email).First(&existing).Error
		if err == nil {
			// A matching record exists; do not reveal which field conflicted
			utils.Flash(c, "Username or email already in use. Please choose a different one.")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("error", err.Error()).Error("Registration lookup failed")
			utils.Flash(c, "Registration failed. Please try again.")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		// Hash the password; plaintext is never stored
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to hash password")
			utils.Flash(c, "Registration failed. Please try again.")
			c.Redirect(http.StatusFound, "/register")
			return
		}
		user := domain.User{Username: username, Email: email, PasswordHash: string(hash)}
		// Create the user; a concurrent duplicate registration loses here on
		// the store's uniqueness constraint and gets the same message
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.Flash(c, "Username or email already in use. Please choose a different one.")
			} else {
				logrus.WithFields(logrus.Fields{
					"username": username,    // Requested username
					"error":    err.Error(), // Error message
				}).Error("Failed to create user")
				utils.Flash(c, "Registration failed. Please try again.")
			}
			c.Redirect(http.StatusFound, "/register")
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // New username
		}).Info("User registered")
		c.Redirect(http.StatusFound, "/login") // Continue to login
	}
}

// LoginFormHandler renders the login form
func LoginFormHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, "login.html", nil)
	}
}

// LoginHandler verifies credentials and establishes the session cookie
func LoginHandler(db *gorm.DB, sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username") // Submitted username
		password := c.PostForm("password") // Submitted password
		var user domain.User
		// Look up the user by exact username
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			// One generic message for every failure mode
			utils.Flash(c, "Invalid login credentials")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		// Compare the provided password with the stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			utils.Flash(c, "Invalid login credentials")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		// Issue the signed session cookie
		token, err := utils.IssueSession(user.Username, sessionSecret, sessionTTL)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to issue session")
			utils.Flash(c, "Login failed. Please try again.")
			c.Redirect(http.StatusFound, "/login")
			return
		}
		c.SetCookie(utils.SessionCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User logged in")
		c.Redirect(http.StatusFound, "/") // Back to the wall
	}
}

// LogoutHandler clears the session association
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(utils.SessionCookie, "", -1, "/", "", false, true) // Drop the cookie
		c.Redirect(http.StatusFound, "/")
	}
}
