package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/seasonledger/internal/app/export"
	"github.com/yigit/seasonledger/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure the 400 response
// has already been written and ok is false.
func parseIDParam(ctx *gin.Context, name, label string) (id int64, ok bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a positive number")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewSuccessResponse(data))
}

// sendDocument streams a rendered export as an attachment.
func sendDocument(ctx *gin.Context, doc *export.Document) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	ctx.Data(http.StatusOK, doc.ContentType, doc.Content)
}
