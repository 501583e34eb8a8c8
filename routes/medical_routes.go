package routes

import (
	"kumbhsetu/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupMedicalRoutes(r *gin.RouterGroup, medicalHandler *handlers.MedicalHandler, auth gin.HandlerFunc) {
	medical := r.Group("/medical")
	medical.Use(auth)
	{
		medical.POST("/", medicalHandler.Create)
		medical.GET("/", medicalHandler.List)
		medical.GET("/my", medicalHandler.MyCases)
		medical.GET("/:id", medicalHandler.Get)
		medical.PUT("/:id/assign", medicalHandler.Assign)
		medical.POST("/:id/notes", medicalHandler.AddNote)
		medical.PUT("/:id/resolve", medicalHandler.Resolve)
	}
}
