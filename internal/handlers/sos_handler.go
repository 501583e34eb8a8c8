package handlers

import (
	"net/http"

	"kumbhsetu/internal/middleware"
	"kumbhsetu/internal/models"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/services"
	"kumbhsetu/internal/utils"
	"kumbhsetu/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SOSHandler struct {
	sos *services.SOSService
}

func NewSOSHandler(sos *services.SOSService) *SOSHandler {
	return &SOSHandler{sos: sos}
}

// Create accepts alerts from anyone, token or not.
func (h *SOSHandler) Create(c *gin.Context) {
	var input services.CreateSOSInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	alert, err := h.sos.CreateAlert(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.CreatedResponse(c, "alert raised", alert)
}

func (h *SOSHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid alert id")
		return
	}

	alert, err := h.sos.GetAlert(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", alert)
}

func (h *SOSHandler) List(c *gin.Context) {
	filter := &interfaces.SOSFilter{}
	if status := c.Query("status"); status != "" {
		sosStatus := models.SOSStatus(status)
		filter.Status = &sosStatus
	}
	if priority := c.Query("priority"); priority != "" {
		sosPriority := models.SOSPriority(priority)
		filter.Priority = &sosPriority
	}

	params := utils.GetPaginationParams(c)
	alerts, total, err := h.sos.ListAlerts(c.Request.Context(), middleware.GetActor(c), filter, params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", alerts, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *SOSHandler) MyAlerts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	alerts, total, err := h.sos.MyAlerts(c.Request.Context(), middleware.GetActor(c), params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", alerts, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *SOSHandler) Acknowledge(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid alert id")
		return
	}

	alert, err := h.sos.Acknowledge(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "alert acknowledged", alert)
}

func (h *SOSHandler) Resolve(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid alert id")
		return
	}

	alert, err := h.sos.Resolve(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "alert resolved", alert)
}
