package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/services"
	"github.com/yigit/seasonledger/internal/middleware"
)

// PersonController handles people and their reports
type PersonController struct {
	personService services.PersonService
	reportService services.ReportService
}

// NewPersonController creates a new PersonController
func NewPersonController(personService services.PersonService, reportService services.ReportService) *PersonController {
	return &PersonController{
		personService: personService,
		reportService: reportService,
	}
}

// ListPeople returns a page of people
// @Summary List people
// @Tags people
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(100)
// @Param sortBy query string false "id, gameName, name, phoneNumber, role, isActive"
// @Param sortDirection query string false "asc or desc"
// @Param search query string false "Substring of game name or name"
// @Param active query bool false "Only active or inactive people"
// @Success 200 {object} dto.APIResponse{data=dto.PersonListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid paging parameters"
// @Router /people [get]
func (c *PersonController) ListPeople(ctx *gin.Context) {
	var filter dto.PersonFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	people, err := c.personService.ListPeople(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, people)
}

// CreatePerson registers a new person
// @Summary Create a person
// @Tags people
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Person information"
// @Success 201 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /people [post]
func (c *PersonController) CreatePerson(ctx *gin.Context) {
	var req dto.CreatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	person, err := c.personService.CreatePerson(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, person)
}

// GetPerson retrieves a person by ID
// @Summary Get a person
// @Tags people
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 404 {object} dto.ErrorResponse "Person not found"
// @Router /people/{id} [get]
func (c *PersonController) GetPerson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "person")
	if !ok {
		return
	}

	person, err := c.personService.GetPerson(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, person)
}

// UpdatePerson replaces a person's editable fields. An empty password keeps the current one.
// @Summary Update a person
// @Tags people
// @Accept json
// @Produce json
// @Param id path int true "Person ID"
// @Param request body dto.UpdatePersonRequest true "Person information"
// @Success 200 {object} dto.APIResponse{data=dto.PersonResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Person not found"
// @Router /people/{id} [put]
func (c *PersonController) UpdatePerson(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "person")
	if !ok {
		return
	}

	var req dto.UpdatePersonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	person, err := c.personService.UpdatePerson(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, person)
}

// ActivatePerson marks a person active
func (c *PersonController) ActivatePerson(ctx *gin.Context) {
	c.setActive(ctx, true)
}

// DeactivatePerson marks a person inactive. DELETE /people/{id} is routed here too;
// people are never removed so their event history stays intact.
func (c *PersonController) DeactivatePerson(ctx *gin.Context) {
	c.setActive(ctx, false)
}

func (c *PersonController) setActive(ctx *gin.Context, active bool) {
	id, ok := parseIDParam(ctx, "id", "person")
	if !ok {
		return
	}

	person, err := c.personService.SetPersonActive(ctx.Request.Context(), id, active)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, person)
}

// GetPersonReport lists the events a person took part in within a season
// @Summary Person report
// @Tags reports
// @Produce json
// @Param id path int true "Person ID"
// @Param seasonId query int false "Season ID, defaults to the latest active season"
// @Param sortBy query string false "id, name, payment, eventPayment, dateTime"
// @Success 200 {object} dto.APIResponse{data=dto.PersonReportResponse}
// @Failure 404 {object} dto.ErrorResponse "Person or season not found"
// @Router /people/{id}/report [get]
func (c *PersonController) GetPersonReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "person")
	if !ok {
		return
	}

	var req dto.PersonReportRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	report, err := c.reportService.PersonReport(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, report)
}

// ExportPersonReport downloads a player's report as XLSX or PDF
// @Summary Export person report
// @Tags reports
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Person ID"
// @Param format query string false "xlsx or pdf" default(xlsx)
// @Param seasonId query int false "Season ID, defaults to the latest active season"
// @Router /people/{id}/report/export [get]
func (c *PersonController) ExportPersonReport(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "person")
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	doc, err := c.reportService.ExportPersonReport(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	sendDocument(ctx, doc)
}
