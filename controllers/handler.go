package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-manager/middleware"
	"github.com/vnkhanh/survey-manager/services"
)

// Handler gom các service mà route cần. Được tạo một lần trong routes.SetupRoutes.
type Handler struct {
	DB        *gorm.DB
	Catalog   *services.CatalogService
	Responses *services.ResponseService
	Results   *services.ResultsService
	Auth      *services.AuthService

	// giá trị mặc định khi body không gửi allow_incomplete_responses
	AllowIncompleteResponses bool
}

func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindInvalidState:
		return http.StatusForbidden
	case services.KindInvalidInput:
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeError map lỗi nghiệp vụ sang status code; lỗi khác trả 500 kèm message.
func writeError(c *gin.Context, err error) {
	var appErr *services.Error
	if errors.As(err, &appErr) {
		c.JSON(statusFor(appErr.Kind), gin.H{"message": appErr.Message, "code": appErr.Code})
		return
	}

	_ = c.Error(err)
	slog.ErrorContext(c.Request.Context(), "unexpected error",
		"request_id", c.GetString(middleware.CtxRequestID),
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
}

// paramID đọc id dương từ path; tự trả 400 nếu sai.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return 0, false
	}
	return uint(id), true
}

// currentUser: user id do AuthJWT inject. Route không có AuthJWT thì trả 401.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return 0, false
	}
	return id, true
}
