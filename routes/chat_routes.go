package routes

import (
	"gocarpool/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupChatRoutes registers the ride chat endpoints.
func SetupChatRoutes(r *gin.RouterGroup, chatHandler *handlers.ChatHandler) {
	chat := r.Group("/chat")
	{
		chat.GET("/:rideId", chatHandler.ListMessages)
		chat.POST("/:rideId", chatHandler.PostMessage)
	}
}
