package sweeper

import (
	"context"       // Cancellation
	"os"            // Directory listing and removal
	"path/filepath" // Path joining
	"time"          // Ticker and age math

	"github.com/sirupsen/logrus" // Logging library
)

// Run sweeps the upload directory on an explicit periodic schedule, deleting
// files older than maxAge, until ctx is cancelled. Running on a timer keeps
// cleanup cost out of the request path.
func Run(ctx context.Context, dir string, maxAge, interval time.Duration) {
	ticker := time.NewTicker(interval) // Sweep period
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return // Shutting down
		case <-ticker.C:
			if err := SweepOnce(dir, maxAge); err != nil {
				logrus.WithFields(logrus.Fields{
					"dir":   dir,         // Upload directory
					"error": err.Error(), // Error message
				}).Error("Upload sweep failed")
			}
		}
	}
}

// SweepOnce deletes every regular file in dir whose modification time is
// older than maxAge. Uploaded files are immutable once written, so a deletion
// racing a concurrent read only affects freshness.
func SweepOnce(dir string, maxAge time.Duration) error {
	entries, err := os.ReadDir(dir) // List the upload directory
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-maxAge) // Anything modified before this goes
	for _, entry := range entries {
		if entry.IsDir() {
			continue // Only regular files are swept
		}
		info, err := entry.Info()
		if err != nil {
			continue // File vanished between listing and stat
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				logrus.WithFields(logrus.Fields{
					"file":  path,        // File being removed
					"error": err.Error(), // Error message
				}).Warn("Failed to delete expired upload")
				continue
			}
			// Log each deletion
			logrus.WithFields(logrus.Fields{
				"file": path,            // Deleted file
				"age":  time.Since(info.ModTime()).String(),
			}).Info("Deleted expired upload")
		}
	}
	return nil
}
