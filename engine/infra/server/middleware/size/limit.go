package size

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/server/router"
)

// BodySizeLimiter rejects requests that announce a body above limit and caps
// the bytes read from the rest.
func BodySizeLimiter(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > limit {
			router.RespondProblemWithCode(c, http.StatusRequestEntityTooLarge, router.ErrPayloadTooLargeCode,
				"request body too large")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
