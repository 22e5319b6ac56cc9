package middleware

import (
	"fmt"

	"gocarpool/internal/utils"
	"gocarpool/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns handler panics into JSON 500 responses.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		entry := log.WithField("panic", fmt.Sprintf("%v", recovered))
		if requestID := c.GetString("request_id"); requestID != "" {
			entry = entry.WithRequestID(requestID)
		}
		entry.Error("Handler panicked")

		utils.InternalServerErrorResponse(c)
		c.Abort()
	})
}
