package routes

import (
	"kumbhsetu/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(r *gin.RouterGroup, analyticsHandler *handlers.AnalyticsHandler, auth gin.HandlerFunc) {
	analytics := r.Group("/analytics")
	analytics.Use(auth)
	{
		analytics.GET("/destinations", analyticsHandler.Destinations)
		analytics.GET("/crowd/:destination", analyticsHandler.CrowdStatus)
		analytics.GET("/recent-registrations", analyticsHandler.RecentCount)
		analytics.GET("/dashboard/admin", analyticsHandler.AdminDashboard)
		analytics.GET("/dashboard/volunteer", analyticsHandler.VolunteerDashboard)
	}
}
