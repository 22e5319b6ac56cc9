package middleware

import (
	"fmt"
	"net/http"
	"time"

	"gocarpool/internal/services"
	"gocarpool/internal/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit enforces a fixed-window per-client limit backed by the shared
// cache. On cache failure the request proceeds; throttling is not worth an
// outage.
func RateLimit(cache services.CacheService, requestsPerMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache == nil || requestsPerMinute <= 0 {
			c.Next()
			return
		}

		window := time.Now().Unix() / 60
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := cache.Increment(c.Request.Context(), key)
		if err != nil {
			c.Next()
			return
		}

		if count == 1 {
			_ = cache.SetExpire(c.Request.Context(), key, time.Minute)
		}

		if count > int64(requestsPerMinute) {
			c.Header("Retry-After", "60")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
