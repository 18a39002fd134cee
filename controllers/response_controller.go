package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type submitResponseReq struct {
	// id lựa chọn theo đúng thứ tự câu hỏi của survey, mỗi câu một phần tử
	SelectedAlternativeIDs   []string `json:"selected_alternative_ids" binding:"required"`
	AllowIncompleteResponses *bool    `json:"allow_incomplete_responses"`
}

// POST /api/surveys/:id/responses
func (h *Handler) SubmitResponse(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req submitResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	allowIncomplete := h.AllowIncompleteResponses
	if req.AllowIncompleteResponses != nil {
		allowIncomplete = *req.AllowIncompleteResponses
	}

	response, err := h.Responses.SubmitResponse(c.Request.Context(), userID, surveyID, req.SelectedAlternativeIDs, allowIncomplete)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"response": response})
}

// GET /api/responses
func (h *Handler) GetUserSurveyResponses(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	responses, err := h.Results.GetUserSurveyResponses(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"responses": responses})
}
