package routes

import (
	"kumbhsetu/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, auth gin.HandlerFunc) {
	users := r.Group("/users")
	users.Use(auth)
	{
		users.PUT("/location", userHandler.UpdateLocation)

		// Admin management; the service gate enforces the role.
		users.GET("/", userHandler.ListUsers)
		users.PUT("/:id/role", userHandler.SetRole)
		users.PUT("/:id/active", userHandler.SetActive)
	}
}
