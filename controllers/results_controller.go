package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/surveys/:id/results
func (h *Handler) GetSurveyResults(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	results, err := h.Results.GetSurveyResults(c.Request.Context(), userID, surveyID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"survey_id": surveyID,
		"results":   results,
	})
}

// GET /api/surveys/:id/results/export?format=csv|xlsx
func (h *Handler) ExportSurveyResults(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	file, err := h.Results.ExportSurveyResults(c.Request.Context(), userID, surveyID, c.DefaultQuery("format", "csv"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
