package domain

import "time"

// Comment Model
type Comment struct {
	ID        uint      `gorm:"primaryKey"`          // Primary key
	Username  string    `gorm:"not null"`            // Author username (free string, not a foreign key)
	Content   string    `gorm:"size:200"`            // Text content, empty when only an image is posted
	Image     string    // Optional filename in the upload directory
	Timestamp time.Time `gorm:"autoCreateTime;index"` // Creation time, server-assigned, immutable
}
