package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// launchBodyOverhead covers the JSON keys, quotes and a uuid request id.
const launchBodyOverhead = 512

// LaunchBodySize is the largest launch request worth reading when names are
// at most maxNameLength bytes. Each name byte may arrive escaped as \uXXXX.
func LaunchBodySize(maxNameLength int) int64 {
	if maxNameLength <= 0 {
		maxNameLength = 255
	}
	return int64(maxNameLength)*6 + launchBodyOverhead
}

// LaunchBodyLimit rejects launch requests larger than LaunchBodySize with 413.
// Bodies without a Content-Length are cut off at the same size while decoding.
func LaunchBodyLimit(maxNameLength int) gin.HandlerFunc {
	limit := LaunchBodySize(maxNameLength)
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
