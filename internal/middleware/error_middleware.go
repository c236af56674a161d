package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

// HandleAPIError maps an error onto its status code and writes the error envelope.
// Domain errors keep their own message; anything unclassified is a 500.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status >= http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, domainDetail(dto.ErrorCodeResourceNotFound, err)
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, domainDetail(dto.ErrorCodeResourceAlreadyExists, err)
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, domainDetail(dto.ErrorCodeValidationFailed, err)
	case errors.Is(err, apperrors.ErrBusinessRule):
		return http.StatusBadRequest, domainDetail(dto.ErrorCodeBusinessRule, err)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical).
			WithDetails(err.Error())
	}
}

// domainDetail copies the message, field and reason code of a CustomError into the envelope.
func domainDetail(code dto.ErrorCode, err error) *dto.ErrorDetail {
	detail := dto.NewErrorDetail(code, err.Error())

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if field, ok := custom.Details["field"].(string); ok {
			detail.WithField(field)
		}
		if custom.Code != "" {
			detail.WithDetails(map[string]string{"reason": custom.Code})
		}
	}
	return detail
}

// Recovery turns a panic into a 500 envelope instead of gin's empty response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Panic recovered")
		HandleAPIError(c, fmt.Errorf("panic: %v", recovered))
	})
}

// NotFound answers unknown routes with the standard envelope.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").WithSeverity(dto.ErrorSeverityWarning),
		))
	}
}
