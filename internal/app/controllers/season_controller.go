package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/services"
	"github.com/yigit/seasonledger/internal/middleware"
)

// SeasonController handles seasons and season reports
type SeasonController struct {
	seasonService services.SeasonService
	reportService services.ReportService
}

// NewSeasonController creates a new SeasonController
func NewSeasonController(seasonService services.SeasonService, reportService services.ReportService) *SeasonController {
	return &SeasonController{
		seasonService: seasonService,
		reportService: reportService,
	}
}

// ListSeasons returns a page of seasons with their event counts
// @Summary List seasons
// @Tags seasons
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Param sortBy query string false "id, startDate, isActive"
// @Param sortDirection query string false "asc or desc"
// @Success 200 {object} dto.APIResponse{data=dto.SeasonListResponse}
// @Router /seasons [get]
func (c *SeasonController) ListSeasons(ctx *gin.Context) {
	var filter dto.SeasonFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	seasons, err := c.seasonService.ListSeasons(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, seasons)
}

// CreateSeason opens a new season
// @Summary Create a season
// @Tags seasons
// @Accept json
// @Produce json
// @Param request body dto.CreateSeasonRequest true "Season information"
// @Success 201 {object} dto.APIResponse{data=dto.SeasonResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /seasons [post]
func (c *SeasonController) CreateSeason(ctx *gin.Context) {
	var req dto.CreateSeasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	season, err := c.seasonService.CreateSeason(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, season)
}

// GetLatestSeason returns the active season with the greatest start date
// @Summary Latest active season
// @Tags seasons
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SeasonResponse}
// @Failure 404 {object} dto.ErrorResponse "No active season"
// @Router /seasons/latest [get]
func (c *SeasonController) GetLatestSeason(ctx *gin.Context) {
	season, err := c.seasonService.LatestSeason(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, season)
}

func (c *SeasonController) GetSeason(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "season")
	if !ok {
		return
	}

	season, err := c.seasonService.GetSeason(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, season)
}

func (c *SeasonController) UpdateSeason(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "season")
	if !ok {
		return
	}

	var req dto.UpdateSeasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	season, err := c.seasonService.UpdateSeason(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, season)
}

func (c *SeasonController) ActivateSeason(ctx *gin.Context) {
	c.setActive(ctx, true)
}

func (c *SeasonController) DeactivateSeason(ctx *gin.Context) {
	c.setActive(ctx, false)
}

func (c *SeasonController) setActive(ctx *gin.Context, active bool) {
	id, ok := parseIDParam(ctx, "id", "season")
	if !ok {
		return
	}

	season, err := c.seasonService.SetSeasonActive(ctx.Request.Context(), id, active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, season)
}

// GetSeasonReport returns per-person totals for a season
// @Summary Season report
// @Tags reports
// @Produce json
// @Param id path int true "Season ID"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Param paidOnly query bool false "Only people with a payment above zero"
// @Success 200 {object} dto.APIResponse{data=dto.SeasonReportResponse}
// @Failure 404 {object} dto.ErrorResponse "Season not found"
// @Router /seasons/{id}/report [get]
func (c *SeasonController) GetSeasonReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "season")
	if !ok {
		return
	}

	var req dto.SeasonReportRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	report, err := c.reportService.SeasonReport(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, report)
}

// ExportSeasonReport downloads the full season report
// @Summary Export season report
// @Tags reports
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Season ID"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Param includePhone query bool false "Render the phone column" default(true)
// @Param paidOnly query bool false "Only people with a payment above zero"
// @Router /seasons/{id}/report/export [get]
func (c *SeasonController) ExportSeasonReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "season")
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	doc, err := c.reportService.ExportSeasonReport(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendDocument(ctx, doc)
}

// GetSeasonChart renders the season totals as a PNG bar chart
// @Summary Season chart
// @Tags reports
// @Produce image/png
// @Param id path int true "Season ID"
// @Param paidOnly query bool false "Only people with a payment above zero"
// @Router /seasons/{id}/report/chart [get]
func (c *SeasonController) GetSeasonChart(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "season")
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	doc, err := c.reportService.SeasonChart(ctx.Request.Context(), id, req.PaidOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, doc.ContentType, doc.Content)
}
