package requestid

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the request ID header honored on the way in and echoed on the
// way out.
const Header = "X-Request-ID"

type ctxKey struct{}

// Middleware tags every request with an ID and stores it on the request
// context so services below the handler layer can log it.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Writer.Header().Set(Header, id)
		c.Request = c.Request.WithContext(
			context.WithValue(c.Request.Context(), ctxKey{}, id))

		c.Next()
	}
}

// Value returns the ID assigned to the request, or "" outside the middleware.
func Value(c *gin.Context) string {
	return FromContext(c.Request.Context())
}

// FromContext reads the request ID from a plain context.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
