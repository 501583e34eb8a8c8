package routes

import (
	"kumbhsetu/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupSOSRoutes(r *gin.RouterGroup, sosHandler *handlers.SOSHandler, auth, optionalAuth gin.HandlerFunc) {
	sos := r.Group("/sos")
	{
		// Anyone on the ground can raise an alert, account or not.
		sos.POST("/", optionalAuth, sosHandler.Create)

		sos.GET("/", auth, sosHandler.List)
		sos.GET("/my", auth, sosHandler.MyAlerts)
		sos.GET("/:id", auth, sosHandler.Get)
		sos.PUT("/:id/acknowledge", auth, sosHandler.Acknowledge)
		sos.PUT("/:id/resolve", auth, sosHandler.Resolve)
	}
}
