package routes

import (
	"kumbhsetu/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRegistrationRoutes(r *gin.RouterGroup, registrationHandler *handlers.RegistrationHandler, auth, optionalAuth gin.HandlerFunc) {
	registrations := r.Group("/registrations")
	{
		// QR check-in works without an account.
		registrations.POST("/", optionalAuth, registrationHandler.Register)

		registrations.GET("/", auth, registrationHandler.List)
		registrations.GET("/:id", auth, registrationHandler.Get)
	}
}
