package main

import (
	"comment_wall/internal/config" // Custom import path (Config)
	"comment_wall/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg)            // Run schema migration and exit
}
