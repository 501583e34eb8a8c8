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

type MedicalHandler struct {
	medical *services.MedicalService
}

func NewMedicalHandler(medical *services.MedicalService) *MedicalHandler {
	return &MedicalHandler{medical: medical}
}

func (h *MedicalHandler) Create(c *gin.Context) {
	var input services.CreateMedicalCaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	medicalCase, err := h.medical.CreateCase(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.CreatedResponse(c, "case opened", medicalCase)
}

func (h *MedicalHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid case id")
		return
	}

	medicalCase, err := h.medical.GetCase(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", medicalCase)
}

func (h *MedicalHandler) List(c *gin.Context) {
	filter := &interfaces.MedicalCaseFilter{}
	if status := c.Query("status"); status != "" {
		s := models.CaseStatus(status)
		filter.Status = &s
	}
	if caseType := c.Query("case_type"); caseType != "" {
		t := models.CaseType(caseType)
		filter.CaseType = &t
	}
	if severity := c.Query("severity"); severity != "" {
		sev := models.CaseSeverity(severity)
		filter.Severity = &sev
	}

	params := utils.GetPaginationParams(c)
	cases, total, err := h.medical.ListCases(c.Request.Context(), middleware.GetActor(c), filter, params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", cases, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *MedicalHandler) MyCases(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	cases, total, err := h.medical.MyCases(c.Request.Context(), middleware.GetActor(c), params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", cases, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *MedicalHandler) Assign(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid case id")
		return
	}

	var body struct {
		AssigneeID string `json:"assignee_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	assigneeID, err := primitive.ObjectIDFromHex(body.AssigneeID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid assignee id")
		return
	}

	medicalCase, err := h.medical.AssignCase(c.Request.Context(), middleware.GetActor(c), id, assigneeID)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "case assigned", medicalCase)
}

func (h *MedicalHandler) AddNote(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid case id")
		return
	}

	var body struct {
		Note string `json:"note" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	medicalCase, err := h.medical.AddNote(c.Request.Context(), middleware.GetActor(c), id, body.Note)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "note added", medicalCase)
}

func (h *MedicalHandler) Resolve(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid case id")
		return
	}

	medicalCase, err := h.medical.ResolveCase(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "case resolved", medicalCase)
}
