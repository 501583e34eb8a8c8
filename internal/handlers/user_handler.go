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

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) UpdateLocation(c *gin.Context) {
	var location models.Location
	if err := c.ShouldBindJSON(&location); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&location); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	user, err := h.users.UpdateLocation(c.Request.Context(), middleware.GetActor(c), &location)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "location updated", user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := &interfaces.UserFilter{}
	if role := c.Query("role"); role != "" {
		userRole := models.UserRole(role)
		filter.Role = &userRole
	}
	if active := c.Query("is_active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}

	params := utils.GetPaginationParams(c)
	users, total, err := h.users.ListUsers(c.Request.Context(), middleware.GetActor(c), filter, params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", users, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *UserHandler) SetRole(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid user id")
		return
	}

	var body struct {
		Role models.UserRole `json:"role" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), middleware.GetActor(c), targetID, body.Role)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "role updated", user)
}

func (h *UserHandler) SetActive(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid user id")
		return
	}

	var body struct {
		Active *bool `json:"active" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Active == nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "active flag required")
		return
	}

	user, err := h.users.SetActive(c.Request.Context(), middleware.GetActor(c), targetID, *body.Active)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "activity updated", user)
}
