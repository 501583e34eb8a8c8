package handlers

import (
	"time"

	"kumbhsetu/internal/middleware"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/services"
	"kumbhsetu/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Destinations(c *gin.Context) {
	filter := &interfaces.RegistrationFilter{}
	if after := c.Query("registered_after"); after != "" {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			filter.RegisteredAfter = &t
		}
	}

	aggregates, err := h.analytics.AggregateByDestination(c.Request.Context(), middleware.GetActor(c), filter)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", aggregates)
}

func (h *AnalyticsHandler) CrowdStatus(c *gin.Context) {
	destination := c.Param("destination")

	status, err := h.analytics.CrowdStatus(c.Request.Context(), middleware.GetActor(c), destination, time.Now())
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", status)
}

func (h *AnalyticsHandler) RecentCount(c *gin.Context) {
	count, err := h.analytics.RecentRegistrationCount(c.Request.Context(), middleware.GetActor(c), time.Now())
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", gin.H{"registrations_last_hour": count})
}

func (h *AnalyticsHandler) AdminDashboard(c *gin.Context) {
	dashboard, err := h.analytics.AdminDashboard(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", dashboard)
}

func (h *AnalyticsHandler) VolunteerDashboard(c *gin.Context) {
	dashboard, err := h.analytics.VolunteerDashboard(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", dashboard)
}
