package routes

import (
	"gocarpool/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRideRoutes registers the ride endpoints. Browsing rides is public;
// everything that writes or is caller-scoped requires auth. The /user/* routes
// are fixed paths alongside /:id; gin resolves them without conflict.
func SetupRideRoutes(r *gin.RouterGroup, authRequired gin.HandlerFunc, rideHandler *handlers.RideHandler) {
	rides := r.Group("/rides")
	{
		rides.GET("", rideHandler.ListRides)
		rides.GET("/:id", rideHandler.GetRide)

		rides.POST("", authRequired, rideHandler.CreateRide)
		rides.PUT("/:id", authRequired, rideHandler.UpdateRide)
		rides.DELETE("/:id", authRequired, rideHandler.DeleteRide)
		rides.POST("/:id/join", authRequired, rideHandler.JoinRide)
		rides.DELETE("/:id/leave", authRequired, rideHandler.LeaveRide)

		rides.GET("/user/created", authRequired, rideHandler.ListCreatedRides)
		rides.GET("/user/joined", authRequired, rideHandler.ListJoinedRides)
	}
}
