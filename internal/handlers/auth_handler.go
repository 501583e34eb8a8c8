package handlers

import (
	"net/http"

	"kumbhsetu/internal/middleware"
	"kumbhsetu/internal/services"
	"kumbhsetu/internal/utils"
	"kumbhsetu/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	result, err := h.users.Signup(c.Request.Context(), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.CreatedResponse(c, "account created", result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	result, err := h.users.Login(c.Request.Context(), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "logged in", result)
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor := middleware.GetActor(c)

	user, err := h.users.Profile(c.Request.Context(), actor)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", user)
}
