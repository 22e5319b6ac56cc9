package routes

import (
	"gocarpool/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers the profile endpoints. Callers must already be
// authenticated by the group's middleware.
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.GetMe)
		users.PUT("/me", userHandler.UpdateMe)
		users.POST("/me/picture", userHandler.UploadProfilePicture)
	}
}
