package routes

import (
	"gocarpool/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes registers the realtime endpoint. The group's auth
// middleware resolves the user before the connection is upgraded.
func SetupWebSocketRoutes(r *gin.RouterGroup, wsHandler *websocket.Handler) {
	r.GET("/ws", wsHandler.HandleWebSocket)
}
