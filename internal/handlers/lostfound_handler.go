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

type LostFoundHandler struct {
	lostFound *services.LostFoundService
}

func NewLostFoundHandler(lostFound *services.LostFoundService) *LostFoundHandler {
	return &LostFoundHandler{lostFound: lostFound}
}

func (h *LostFoundHandler) Create(c *gin.Context) {
	var input services.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	report, err := h.lostFound.CreateReport(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.CreatedResponse(c, "report filed", report)
}

func (h *LostFoundHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid report id")
		return
	}

	report, err := h.lostFound.GetReport(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", report)
}

func (h *LostFoundHandler) List(c *gin.Context) {
	filter := &interfaces.LostFoundFilter{}
	if reportType := c.Query("type"); reportType != "" {
		t := models.ReportType(reportType)
		filter.Type = &t
	}
	if status := c.Query("status"); status != "" {
		s := models.ReportStatus(status)
		filter.Status = &s
	}
	if isPerson := c.Query("is_person"); isPerson != "" {
		person := isPerson == "true"
		filter.IsPerson = &person
	}

	params := utils.GetPaginationParams(c)
	reports, total, err := h.lostFound.ListReports(c.Request.Context(), middleware.GetActor(c), filter, params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", reports, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *LostFoundHandler) MyReports(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	reports, total, err := h.lostFound.MyReports(c.Request.Context(), middleware.GetActor(c), params)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", reports, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// Match pairs a lost report with a found report.
func (h *LostFoundHandler) Match(c *gin.Context) {
	var body struct {
		ReportID      string `json:"report_id" validate:"required"`
		MatchReportID string `json:"match_report_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	idA, err := primitive.ObjectIDFromHex(body.ReportID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid report id")
		return
	}
	idB, err := primitive.ObjectIDFromHex(body.MatchReportID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid match report id")
		return
	}

	if err := h.lostFound.MatchReports(c.Request.Context(), middleware.GetActor(c), idA, idB); err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "reports matched", nil)
}

// Correlate links a person report to a QR registration.
func (h *LostFoundHandler) Correlate(c *gin.Context) {
	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid report id")
		return
	}

	var body struct {
		RegistrationID string `json:"registration_id" validate:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	registrationID, err := primitive.ObjectIDFromHex(body.RegistrationID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid registration id")
		return
	}

	result, err := h.lostFound.CorrelatePersonReport(c.Request.Context(), middleware.GetActor(c), reportID, registrationID)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "report correlated", result)
}

func (h *LostFoundHandler) UploadPersonPhoto(c *gin.Context) {
	var input services.UploadPersonPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if details := validators.ValidateStruct(&input); details != nil {
		utils.ValidationErrorResponse(c, details)
		return
	}

	report, candidates, err := h.lostFound.UploadPersonPhoto(c.Request.Context(), middleware.GetActor(c), &input)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.CreatedResponse(c, "person report created", gin.H{
		"report":     report,
		"candidates": candidates,
	})
}

func (h *LostFoundHandler) Candidates(c *gin.Context) {
	candidates, err := h.lostFound.SuggestCandidates(c.Request.Context(), utils.MaxCandidateSuggestions)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "", candidates)
}

func (h *LostFoundHandler) Resolve(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid report id")
		return
	}

	report, err := h.lostFound.ResolveReport(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		utils.ErrorResponseFromErr(c, err)
		return
	}

	utils.SuccessResponse(c, "report resolved", report)
}
