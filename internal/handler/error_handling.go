package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-server/internal/models"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrInvalidUsername):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeValidation, Message: "Username must be 2-500 characters of letters, digits, '_', '-', '.' or '!'"}
	case errors.Is(err, models.ErrSelfFollow):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Code: models.ErrCodeSelfFollow, Message: "Users cannot follow themselves"}
	case errors.Is(err, models.ErrUserAlreadyExists):
		statusCode = http.StatusConflict
		errResp = models.ErrorResponse{Code: models.ErrCodeDuplicateUser, Message: "Username already exists"}
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeUserNotFound, Message: "User not found"}
	case errors.Is(err, models.ErrFollowNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Code: models.ErrCodeUserNotFound, Message: "Follow edge not found"}
	case errors.Is(err, models.ErrForbidden):
		statusCode = http.StatusForbidden
		errResp = models.ErrorResponse{Code: models.ErrCodeForbidden, Message: "Operation not permitted for this account"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Code: models.ErrCodeInternal, Message: "An unexpected internal error occurred"}
	}

	c.AbortWithStatusJSON(statusCode, errResp)
}
