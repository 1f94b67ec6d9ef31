package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodakun/smartlearn-backend/internal/http/response"
)

const headerMaintenanceKey = "X-Maintenance-Key"

// RequireMaintenanceKey guards operational endpoints (batch email) with a
// shared secret instead of user auth. An empty configured key disables the
// endpoints entirely rather than leaving them open.
func RequireMaintenanceKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Envelope{
				Success: false,
				Error:   &response.APIError{Message: "maintenance endpoints disabled", Code: "forbidden"},
			})
			return
		}
		provided := c.GetHeader(headerMaintenanceKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Envelope{
				Success: false,
				Error:   &response.APIError{Message: "invalid maintenance key", Code: "forbidden"},
			})
			return
		}
		c.Next()
	}
}
