package handlers

import (
	"net/http"
	"time"

	"kumbhsetu/internal/middleware"
	"kumbhsetu/internal/repositories/interfaces"
	"kumbhsetu/internal/services"
	"kumbhsetu/internal/utils"
	"kumbhsetu/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RegistrationHandler struct {
	registrations *services.RegistrationService
}

func NewRegistrationHandler(registrations *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

// Register is open to anonymous callers; a group checking in at a gate
// may not have an account. When a token is present the registration is
// attributed to the user.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	if actor := middleware.GetActor(c); actor != nil {
		actorID := actor.ID
		input.RegisteredBy = &actorID
	}

	registration, err := h.registrations.Register(c.Request.Context(), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.CreatedResponse(c, "group registered", registration)
}

func (h *RegistrationHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid registration id")
		return
	}

	registration, err := h.registrations.GetRegistration(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", registration)
}

func (h *RegistrationHandler) List(c *gin.Context) {
	filter := &interfaces.RegistrationFilter{}
	if destination := c.Query("destination"); destination != "" {
		filter.Destination = &destination
	}
	if after := c.Query("registered_after"); after != "" {
		if t, err := time.Parse(time.RFC3339, after); err == nil {
			filter.RegisteredAfter = &t
		}
	}
	if until := c.Query("registered_until"); until != "" {
		if t, err := time.Parse(time.RFC3339, until); err == nil {
			filter.RegisteredUntil = &t
		}
	}

	params := utils.GetPaginationParams(c)
	registrations, total, err := h.registrations.ListRegistrations(c.Request.Context(), middleware.GetActor(c), filter, params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", registrations, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}
