package routes

import (
	"kumbhsetu/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupLostFoundRoutes(r *gin.RouterGroup, lostFoundHandler *handlers.LostFoundHandler, auth gin.HandlerFunc) {
	reports := r.Group("/lost-found")
	reports.Use(auth)
	{
		reports.POST("/", lostFoundHandler.Create)
		reports.GET("/", lostFoundHandler.List)
		reports.GET("/my", lostFoundHandler.MyReports)
		reports.GET("/candidates", lostFoundHandler.Candidates)
		reports.POST("/match", lostFoundHandler.Match)
		reports.POST("/upload-person", lostFoundHandler.UploadPersonPhoto)
		reports.GET("/:id", lostFoundHandler.Get)
		reports.PUT("/:id/correlate", lostFoundHandler.Correlate)
		reports.PUT("/:id/resolve", lostFoundHandler.Resolve)
	}
}
