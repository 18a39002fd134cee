package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/* ========== Thêm câu hỏi (owner-only) ========== */

type addQuestionReq struct {
	Text string `json:"text" binding:"required"`
}

// POST /api/surveys/:id/questions
func (h *Handler) AddQuestion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req addQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	q, err := h.Catalog.CreateQuestion(c.Request.Context(), userID, surveyID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": q})
}

/* ========== Xoá câu hỏi (owner-only) ========== */

// DELETE /api/surveys/:id/questions/:questionId
func (h *Handler) DeleteQuestion(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}

	if err := h.Catalog.DeleteQuestion(c.Request.Context(), userID, surveyID, questionID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== Thêm / xoá lựa chọn (owner-only) ========== */

type addAlternativeReq struct {
	Value string `json:"value" binding:"required,max=255"`
}

// POST /api/surveys/:id/questions/:questionId/alternatives
func (h *Handler) AddAlternative(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}

	var req addAlternativeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	alt, err := h.Catalog.CreateAlternative(c.Request.Context(), userID, surveyID, questionID, req.Value)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"alternative": alt})
}

// DELETE /api/surveys/:id/questions/:questionId/alternatives/:alternativeId
func (h *Handler) DeleteAlternative(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}
	alternativeID, ok := paramID(c, "alternativeId")
	if !ok {
		return
	}

	if err := h.Catalog.DeleteAlternative(c.Request.Context(), userID, surveyID, questionID, alternativeID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
