package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string // HTTP listen port
	DBDriver      string // Database driver: sqlite or mysql
	DBPath        string // SQLite database file path
	DBUser        string // MySQL user
	DBPassword    string // MySQL password
	DBHost        string // MySQL host
	DBPort        string // MySQL port
	DBName        string // MySQL database name
	SessionSecret string // Secret used to sign session cookies
	UploadDir     string // Directory for uploaded images
	MaxUploadMB   int    // Upload size ceiling in megabytes
	RetentionDays int    // Age threshold for the upload sweeper
	SweepInterval int    // Sweeper period in minutes
	RedisAddr     string // Redis server address (empty disables the cache)
	RedisPass     string // Redis password
	RedisDB       int    // Redis database number
	IsProd        bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:       getEnv("PORT", "5000"),                 // Listen port
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),          // Relational file store by default
		DBPath:        getEnv("DB_PATH", "data.db"),           // SQLite file
		DBUser:        os.Getenv("DB_USER"),                   // MySQL user
		DBPassword:    os.Getenv("DB_PASSWORD"),               // MySQL password
		DBHost:        os.Getenv("DB_HOST"),                   // MySQL host
		DBPort:        getEnv("DB_PORT", "3306"),              // MySQL port
		DBName:        os.Getenv("DB_NAME"),                   // MySQL database name
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret"), // Cookie signing secret
		UploadDir:     getEnv("UPLOAD_DIR", "web/uploads"),    // Upload directory
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", 10),         // 10MB upload ceiling
		RetentionDays: getEnvInt("RETENTION_DAYS", 7),         // Delete uploads older than 7 days
		SweepInterval: getEnvInt("SWEEP_INTERVAL_MIN", 60),    // Sweep every hour
		RedisAddr:     os.Getenv("REDIS_ADDR"),                // Redis server address
		RedisPass:     os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:       redisDB,                                // Redis database number
		IsProd:        os.Getenv("IS_PROD") == "true",         // Is production environment
	}
}

// getEnv returns the value of key, or def when the variable is unset
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the integer value of key, or def when unset or invalid
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
