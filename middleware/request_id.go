package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key the request id is stored under. The
// error logger reads it back when reporting failed requests.
const RequestIDKey = "request_id"

// RequestIDMiddleware tags every request with an id and echoes it in the
// X-Request-ID response header. An id already set by a proxy or the
// back-office frontend is kept, so one id follows a lookup across services.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
