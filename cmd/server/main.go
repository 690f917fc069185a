package main

import (
	"context" // Context for Redis and the sweeper
	"log"     // log package is needed for logging
	"os"      // Upload directory creation
	"time"    // Sweeper durations

	"comment_wall/internal/api"        // Custom package for request handlers
	"comment_wall/internal/config"     // Custom package for configuration
	"comment_wall/internal/db"         // Custom package for database access
	"comment_wall/internal/domain"     // Custom package for domain models
	"comment_wall/internal/middleware" // Custom package for middleware
	"comment_wall/internal/sweeper"    // Custom package for upload retention
	"comment_wall/internal/utils"      // Custom package for utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database and ensure the schema exists
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := gdb.AutoMigrate(&domain.User{}, &domain.Comment{}); err != nil {
		logrus.Fatalf("failed to migrate schema: %v", err)
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logrus.Fatalf("failed to create upload directory: %v", err)
	}

	// Setup the Redis-backed wall cache; the app runs without it
	var cache *utils.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Warnf("failed to connect to Redis, continuing without cache: %v", err)
		} else {
			cache = utils.NewCache(redisClient)
		}
	}

	// Start the retention sweeper on its own schedule
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	interval := time.Duration(cfg.SweepInterval) * time.Minute
	go sweeper.Run(context.Background(), cfg.UploadDir, retention, interval)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.LoadHTMLGlob("web/templates/*.html")  // Server-rendered pages
	r.Static("/uploads", cfg.UploadDir)     // Serve uploaded images
	r.MaxMultipartMemory = 8 << 20          // In-memory multipart bound

	// Body size ceiling and session resolution apply everywhere
	r.Use(middleware.MaxBodySize(int64(cfg.MaxUploadMB) << 20))
	r.Use(middleware.SessionMiddleware(cfg.SessionSecret))

	// Public routes
	r.GET("/", api.HomeHandler(gdb, cache))          // Comment wall
	r.GET("/info", api.InfoHandler())                // Static info page
	r.GET("/contact", api.ContactHandler())          // Static contact page
	r.GET("/register", api.RegisterFormHandler())    // Registration form
	r.POST("/register", api.RegisterHandler(gdb))    // Registration submission
	r.GET("/login", api.LoginFormHandler())          // Login form
	r.POST("/login", api.LoginHandler(gdb, cfg.SessionSecret)) // Login submission
	r.GET("/logout", api.LogoutHandler())            // Clear session

	// Session-gated routes
	authed := r.Group("")
	authed.Use(middleware.RequireLogin())
	authed.GET("/profile", api.ProfileHandler(gdb))                                         // View profile
	authed.GET("/edit_profile", api.EditProfileFormHandler(gdb))                            // Edit form
	authed.POST("/edit_profile", api.EditProfileHandler(gdb, cfg.UploadDir, cfg.MaxUploadMB)) // Edit submission
	authed.GET("/account-settings", api.AccountSettingsFormHandler(gdb))                    // Settings page
	authed.POST("/account-settings", api.AccountSettingsHandler(gdb))                       // Settings submission
	authed.POST("/add_comment", api.AddCommentHandler(gdb, cache, cfg.UploadDir, cfg.MaxUploadMB)) // Post a comment

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
