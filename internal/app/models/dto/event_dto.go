package dto

import (
	"time"

	"github.com/yigit/seasonledger/internal/app/models"
)

// CreateEventRequest represents event creation data. DateTime defaults to now.
type CreateEventRequest struct {
	Name     string        `json:"name" binding:"required,max=200"`
	SeasonID int64         `json:"seasonId" binding:"required,min=1"`
	Payment  *models.Money `json:"payment" binding:"required,gte=0"`
	DateTime *time.Time    `json:"dateTime"`
}

// UpdateEventRequest represents event update data
type UpdateEventRequest struct {
	Name     string        `json:"name" binding:"required,max=200"`
	SeasonID int64         `json:"seasonId" binding:"required,min=1"`
	Payment  *models.Money `json:"payment" binding:"required,gte=0"`
	DateTime *time.Time    `json:"dateTime"`
}

type EventResponse struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	SeasonID         int64        `json:"seasonId"`
	Payment          models.Money `json:"payment"`
	DateTime         time.Time    `json:"dateTime"`
	ParticipantCount int64        `json:"participantCount"`
}

// EventFilterRequest represents list parameters for events
type EventFilterRequest struct {
	ListQuery
	PageSize int    `form:"pageSize,default=50" binding:"min=1"`
	SeasonID *int64 `form:"seasonId" binding:"omitempty,min=1"`
}

type EventListResponse struct {
	Events []EventResponse `json:"events"`
	PaginationInfo
}

// AddParticipantRequest carries an optional payment; the event's base payment is used when absent.
type AddParticipantRequest struct {
	Payment *models.Money `json:"payment" binding:"omitempty,gte=0"`
}

// UpdateParticipantPaymentRequest represents a participant payment change
type UpdateParticipantPaymentRequest struct {
	Payment *models.Money `json:"payment" binding:"required,gte=0"`
}

type ParticipantResponse struct {
	PersonID    int64        `json:"personId"`
	GameName    string       `json:"gameName"`
	Name        string       `json:"name"`
	PhoneNumber string       `json:"phoneNumber"`
	IsActive    bool         `json:"isActive"`
	Payment     models.Money `json:"payment"`
	AddedAt     time.Time    `json:"addedAt"`
}

type ParticipantListResponse struct {
	EventID      int64                 `json:"eventId"`
	Participants []ParticipantResponse `json:"participants"`
	TotalSum     models.Money          `json:"totalSum"`
}

// FromEvent converts a models.Event to an EventResponse
func FromEvent(e *models.Event) EventResponse {
	if e == nil {
		return EventResponse{}
	}
	return EventResponse{
		ID:               e.ID,
		Name:             e.Name,
		SeasonID:         e.SeasonID,
		Payment:          e.Payment,
		DateTime:         e.DateTime,
		ParticipantCount: e.ParticipantCount,
	}
}

func FromParticipant(p *models.ParticipantDetail) ParticipantResponse {
	return ParticipantResponse{
		PersonID:    p.PersonID,
		GameName:    p.GameName,
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		IsActive:    p.IsActive,
		Payment:     p.Payment,
		AddedAt:     p.AddedAt,
	}
}
