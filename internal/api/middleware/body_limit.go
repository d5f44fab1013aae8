package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vineetm1204-m/ODAutomation/pkg/response"
)

// BodyLimit caps the request body at maxBytes. Handlers that hit the cap
// while reading get an error; if they only record it on the context, this
// middleware answers 413 for them.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() || c.Writer.Written() {
			return
		}
		for _, err := range c.Errors {
			if IsBodyTooLarge(err.Err) {
				response.Error(c, http.StatusRequestEntityTooLarge, response.CodeTooLarge, "Request body too large")
				return
			}
		}
	}
}

// IsBodyTooLarge reports whether err came from a MaxBytesReader
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
