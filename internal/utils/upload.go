package utils

import (
	"errors"         // Error construction
	"io"             // File copying
	"mime/multipart" // Uploaded file headers
	"os"             // File operations
	"path/filepath"  // Path handling
	"strings"        // String manipulation
)

// allowedExtensions is the fixed allow-list for uploaded images
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ErrBadFilename is returned when a filename sanitizes down to nothing
var ErrBadFilename = errors.New("invalid upload filename")

// AllowedFile reports whether a file may be accepted: the filename extension
// must be on the allow-list and the declared content type must be an image.
// File bytes are not inspected; the declared extension and MIME type are
// trusted.
func AllowedFile(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename)) // Extension, lowercased
	if !allowedExtensions[ext] {
		return false // Extension not on the allow-list
	}
	return strings.HasPrefix(contentType, "image") // Declared MIME type must be an image
}

// SanitizeFilename strips any path components and unsafe characters from an
// uploaded filename, keeping only ASCII letters, digits, '.', '_' and '-'.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)                   // Drop any directory components
	name = strings.ReplaceAll(name, "\\", "_")   // Windows separators survive Base on Unix
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_') // Replace anything else
		}
	}
	out := b.String()
	// Refuse names that are only dots or underscores after cleaning
	if strings.Trim(out, "._") == "" {
		return ""
	}
	return out
}

// SaveUpload writes an uploaded file into dir under its sanitized name and
// returns that name. The file is written to a temp file first and renamed
// into place so a concurrent reader never sees a partial file.
func SaveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	name := SanitizeFilename(fh.Filename)
	if name == "" {
		return "", ErrBadFilename // Nothing usable left after sanitizing
	}
	src, err := fh.Open() // Open the uploaded file
	if err != nil {
		return "", err
	}
	defer src.Close()
	tmp, err := os.CreateTemp(dir, ".upload-*") // Temp file in the same directory
	if err != nil {
		return "", err
	}
	// Copy the upload into the temp file
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name()) // Drop the partial file
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	// Atomic rename into the final name
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return name, nil
}
