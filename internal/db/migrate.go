package db

import (
	"comment_wall/internal/config" // Application configuration
	"comment_wall/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
)

// Migrate performs automatic migration for the database schema
func Migrate(cfg *config.Config) {
	gdb, err := Open(cfg) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing constraints, columns and indexes
	err = gdb.AutoMigrate(&domain.User{}, &domain.Comment{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
