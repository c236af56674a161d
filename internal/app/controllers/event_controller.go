package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/services"
	"github.com/yigit/seasonledger/internal/middleware"
)

// EventController handles events and their participants
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// ListEvents returns a page of events
// @Summary List events
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(50)
// @Param seasonId query int false "Filter by season"
// @Param sortBy query string false "id, name, seasonId, payment, dateTime"
// @Param sortDirection query string false "asc or desc"
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse}
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	var filter dto.EventFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	events, err := c.eventService.ListEvents(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, events)
}

// CreateEvent records an event in an active season
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid data or inactive season"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, event)
}

func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, event)
}

// UpdateEvent rewrites an event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event information"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid data or inactive season"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, event)
}

// DeleteEvent removes an event and its participants
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Event deleted"})
}

// ListParticipants lists the people on an event with their payments
// @Summary List event participants
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantListResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/participants [get]
func (c *EventController) ListParticipants(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "event")
	if !ok {
		return
	}

	participants, err := c.eventService.ListParticipants(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, participants)
}

func (c *EventController) participantIDs(ctx *gin.Context) (eventID, personID int64, ok bool) {
	if eventID, ok = parseIDParam(ctx, "id", "event"); !ok {
		return 0, 0, false
	}
	if personID, ok = parseIDParam(ctx, "personId", "person"); !ok {
		return 0, 0, false
	}
	return eventID, personID, true
}

// AddParticipant puts a person on an event. The body is optional.
// @Summary Add a participant
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param personId path int true "Person ID"
// @Param request body dto.AddParticipantRequest false "Payment, defaults to the event payment"
// @Success 201 {object} dto.APIResponse{data=dto.ParticipantResponse}
// @Failure 404 {object} dto.ErrorResponse "Event or person not found"
// @Failure 409 {object} dto.ErrorResponse "Already a participant"
// @Router /events/{id}/participants/{personId} [post]
func (c *EventController) AddParticipant(ctx *gin.Context) {
	eventID, personID, ok := c.participantIDs(ctx)
	if !ok {
		return
	}

	var req dto.AddParticipantRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			middleware.HandleBindingError(ctx, err)
			return
		}
	}

	participant, err := c.eventService.AddParticipant(ctx.Request.Context(), eventID, personID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, participant)
}

func (c *EventController) RemoveParticipant(ctx *gin.Context) {
	eventID, personID, ok := c.participantIDs(ctx)
	if !ok {
		return
	}

	if err := c.eventService.RemoveParticipant(ctx.Request.Context(), eventID, personID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Participant removed"})
}

// UpdateParticipantPayment changes what one participant paid for an event
// @Summary Update a participant payment
// @Tags events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param personId path int true "Person ID"
// @Param request body dto.UpdateParticipantPaymentRequest true "New payment"
// @Success 200 {object} dto.APIResponse{data=dto.ParticipantResponse}
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Router /events/{id}/participants/{personId}/payment [put]
func (c *EventController) UpdateParticipantPayment(ctx *gin.Context) {
	eventID, personID, ok := c.participantIDs(ctx)
	if !ok {
		return
	}

	var req dto.UpdateParticipantPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	participant, err := c.eventService.UpdateParticipantPayment(ctx.Request.Context(), eventID, personID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, participant)
}
