package domain

// User Model
type User struct {
	ID           uint   `gorm:"primaryKey"`             // Primary key
	Username     string `gorm:"unique;not null"`        // Unique username
	Email        string `gorm:"unique;not null"`        // Unique email address
	PasswordHash string `gorm:"not null"`               // One-way password hash, never plaintext
	Bio          string // Optional free-text bio
	ProfilePic   string // Optional filename in the upload directory
}
