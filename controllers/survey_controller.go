package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-manager/services"
	"github.com/vnkhanh/survey-manager/utils"
)

/* ========== Tạo survey ========== */

type createSurveyReq struct {
	Name        string `json:"name"        binding:"required,min=1,max=255"`
	Description string `json:"description"`
}

// POST /api/surveys
func (h *Handler) CreateSurvey(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req createSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	survey, err := h.Catalog.CreateSurvey(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"survey": survey})
}

/* ========== Danh sách survey ========== */

// GET /api/surveys
func (h *Handler) GetUserSurveys(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	surveys, err := h.Catalog.GetUserSurveys(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"surveys": surveys})
}

// GET /api/surveys/all
func (h *Handler) GetAllSurveys(c *gin.Context) {
	surveys, err := h.Catalog.GetAllSurveys(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"surveys": surveys})
}

// GET /api/surveys/unanswered
func (h *Handler) GetUserUnansweredSurveys(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	surveys, err := h.Catalog.GetUserUnansweredSurveys(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unanswered_surveys": surveys})
}

/* ========== Chi tiết survey ========== */

// GET /api/surveys/:id
func (h *Handler) GetSurvey(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	survey, err := h.Catalog.GetSurvey(c.Request.Context(), surveyID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

/* ========== Cập nhật survey (owner-only) ========== */

type updateSurveyReq struct {
	Name        *string              `json:"name"         binding:"omitempty,min=1,max=255"`
	Description *string              `json:"description"`
	Released    *bool                `json:"released"`
	ClosingDate utils.NullableString `json:"closing_date" binding:"omitempty,dmy"` // ngày/tháng/năm, null để xoá
}

// PATCH /api/surveys/:id
func (h *Handler) UpdateSurvey(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req updateSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	survey, err := h.Catalog.UpdateSurvey(c.Request.Context(), userID, surveyID, services.SurveyPatch{
		Name:        req.Name,
		Description: req.Description,
		Released:    req.Released,
		ClosingDate: req.ClosingDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"survey": survey})
}

/* ========== Xoá survey (owner-only) ========== */

// DELETE /api/surveys/:id
func (h *Handler) DeleteSurvey(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Catalog.DeleteSurvey(c.Request.Context(), userID, surveyID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
