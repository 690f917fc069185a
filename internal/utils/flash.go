package utils

import (
	"github.com/gin-gonic/gin" // Gin web framework
)

// flashCookie carries a one-shot notice across a redirect
const flashCookie = "flash"

// Flash stores a message to be shown on the next rendered page
func Flash(c *gin.Context, msg string) {
	c.SetCookie(flashCookie, msg, 60, "/", "", false, true) // Short-lived, HTTP-only
}

// PopFlash returns the pending flash message and clears it
func PopFlash(c *gin.Context) string {
	msg, err := c.Cookie(flashCookie)
	if err != nil || msg == "" {
		return "" // Nothing pending
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true) // Clear the cookie
	return msg
}
