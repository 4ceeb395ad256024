package middleware

import (
	"net/http"
	"time"

	"checkout-api/internal/config"
	"checkout-api/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserAuthMiddleware resolves the current user for checkout routes. Session
// handling lives in the surrounding application; an upstream gateway is
// expected to set X-User-ID after authenticating the request. When no user
// is present the request is rejected unless anonymous checkout is enabled,
// in which case a generated guest id is used.
func UserAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")

		// If not passed via header, try to get from query parameters
		if userID == "" {
			userID = c.Query("user_id")
		}

		if userID == "" {
			if !config.AppConfig.AllowAnonymousCheckout {
				c.JSON(http.StatusUnauthorized, response.Error("Missing user identity"))
				c.Abort()
				return
			}
			userID = "guest-" + uuid.NewString()
			c.Set("anonymous", true)
		}

		c.Set("user_id", userID)
		c.Set("request_time", time.Now())
		c.Next()
	}
}
