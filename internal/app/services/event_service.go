package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
	"github.com/yigit/seasonledger/internal/pkg/validation"
)

// EventService defines the interface for event and participant operations
type EventService interface {
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, id int64) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, id int64) error
	ListEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error)

	ListParticipants(ctx context.Context, eventID int64) (*dto.ParticipantListResponse, error)
	AddParticipant(ctx context.Context, eventID, personID int64, req *dto.AddParticipantRequest) (*dto.ParticipantResponse, error)
	RemoveParticipant(ctx context.Context, eventID, personID int64) error
	UpdateParticipantPayment(ctx context.Context, eventID, personID int64, req *dto.UpdateParticipantPaymentRequest) (*dto.ParticipantResponse, error)
}

type eventServiceImpl struct {
	events       repositories.EventStore
	seasons      repositories.SeasonStore
	people       repositories.PersonStore
	participants repositories.ParticipantStore
	tx           db.Transactor
	clock        clockwork.Clock
}

// NewEventService creates a new EventService
func NewEventService(
	events repositories.EventStore,
	seasons repositories.SeasonStore,
	people repositories.PersonStore,
	participants repositories.ParticipantStore,
	tx db.Transactor,
	clock clockwork.Clock,
) EventService {
	return &eventServiceImpl{
		events:       events,
		seasons:      seasons,
		people:       people,
		participants: participants,
		tx:           tx,
		clock:        clock,
	}
}

func validateEvent(name string, payment *models.Money) (string, error) {
	name = strings.TrimSpace(name)
	if err := validation.NewStringValidation("name", name).WithMaxLength(models.EventNameMaxLength).Validate(); err != nil {
		return "", err
	}
	if payment == nil {
		return "", apperrors.NewValidationError("payment", "payment is required")
	}
	if err := validation.NonNegative("payment", payment.Cents()); err != nil {
		return "", err
	}
	return name, nil
}

// requireActiveSeason locks the season row for the rest of the transaction and
// rejects missing or inactive seasons.
func (s *eventServiceImpl) requireActiveSeason(ctx context.Context, seasonID int64) error {
	season, err := s.seasons.GetForShare(ctx, seasonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSeasonNotFound) {
			return apperrors.ErrSeasonNotActive
		}
		return err
	}
	if !season.IsActive {
		return apperrors.ErrSeasonNotActive
	}
	return nil
}

// CreateEvent stores an event in an active season. DateTime defaults to the current time.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	name, err := validateEvent(req.Name, req.Payment)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:     name,
		SeasonID: req.SeasonID,
		Payment:  *req.Payment,
		DateTime: s.eventTime(req.DateTime),
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireActiveSeason(ctx, event.SeasonID); err != nil {
			return err
		}
		_, err := s.events.Create(ctx, event)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("eventID", event.ID).Int64("seasonID", event.SeasonID).Msg("Event created")
	resp := dto.FromEvent(event)
	return &resp, nil
}

func (s *eventServiceImpl) eventTime(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return s.clock.Now().UTC()
	}
	return t.UTC()
}

func (s *eventServiceImpl) GetEvent(ctx context.Context, id int64) (*dto.EventResponse, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromEvent(event)
	return &resp, nil
}

// UpdateEvent rewrites the event. The target season must be active at the time of the edit.
// An absent DateTime keeps the stored one.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	name, err := validateEvent(req.Name, req.Payment)
	if err != nil {
		return nil, err
	}

	var updated *models.Event
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := s.events.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.requireActiveSeason(ctx, req.SeasonID); err != nil {
			return err
		}

		event.Name = name
		event.SeasonID = req.SeasonID
		event.Payment = *req.Payment
		if req.DateTime != nil && !req.DateTime.IsZero() {
			event.DateTime = req.DateTime.UTC()
		}
		if err := s.events.Update(ctx, event); err != nil {
			return err
		}
		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromEvent(updated)
	return &resp, nil
}

// DeleteEvent removes the event together with its participants.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id int64) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.events.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int64("eventID", id).Msg("Event deleted")
	return nil
}

func (s *eventServiceImpl) ListEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	if err := helpers.ValidatePage(filter.Page, filter.PageSize); err != nil {
		return nil, err
	}

	var events []*models.Event
	var total int64
	err := s.tx.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		events, total, err = s.events.List(ctx, repositories.EventFilter{
			ListOptions: listOptions(filter.ListQuery, filter.PageSize),
			SeasonID:    filter.SeasonID,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}

	items := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, dto.FromEvent(e))
	}
	return &dto.EventListResponse{
		Events:         items,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// ListParticipants returns every participant of the event ordered by game name.
func (s *eventServiceImpl) ListParticipants(ctx context.Context, eventID int64) (*dto.ParticipantListResponse, error) {
	var details []models.ParticipantDetail
	err := s.tx.WithSnapshot(ctx, func(ctx context.Context) error {
		if _, err := s.events.GetByID(ctx, eventID); err != nil {
			return err
		}
		var err error
		details, err = s.participants.ListByEvent(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ParticipantListResponse{
		EventID:      eventID,
		Participants: make([]dto.ParticipantResponse, 0, len(details)),
	}
	for i := range details {
		resp.Participants = append(resp.Participants, dto.FromParticipant(&details[i]))
		resp.TotalSum += details[i].Payment
	}
	return resp, nil
}

// AddParticipant puts an active person on the event. Without an explicit payment the
// event's base payment is recorded.
func (s *eventServiceImpl) AddParticipant(ctx context.Context, eventID, personID int64, req *dto.AddParticipantRequest) (*dto.ParticipantResponse, error) {
	if req.Payment != nil {
		if err := validation.NonNegative("payment", req.Payment.Cents()); err != nil {
			return nil, err
		}
	}

	var resp dto.ParticipantResponse
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		event, err := s.events.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		person, err := s.people.GetByID(ctx, personID)
		if err != nil {
			return err
		}
		if !person.IsActive {
			return apperrors.ErrPersonInactive
		}

		participant := &models.EventParticipant{
			EventID:  eventID,
			PersonID: personID,
			Payment:  event.Payment,
		}
		if req.Payment != nil {
			participant.Payment = *req.Payment
		}
		if err := s.participants.Add(ctx, participant); err != nil {
			return err
		}
		resp = participantResponse(person, participant)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("eventID", eventID).Int64("personID", personID).Str("payment", resp.Payment.String()).Msg("Participant added")
	return &resp, nil
}

func (s *eventServiceImpl) RemoveParticipant(ctx context.Context, eventID, personID int64) error {
	if err := s.participants.Remove(ctx, eventID, personID); err != nil {
		return err
	}
	logger.Ctx(ctx).Info().Int64("eventID", eventID).Int64("personID", personID).Msg("Participant removed")
	return nil
}

func (s *eventServiceImpl) UpdateParticipantPayment(ctx context.Context, eventID, personID int64, req *dto.UpdateParticipantPaymentRequest) (*dto.ParticipantResponse, error) {
	if req.Payment == nil {
		return nil, apperrors.NewValidationError("payment", "payment is required")
	}
	if err := validation.NonNegative("payment", req.Payment.Cents()); err != nil {
		return nil, err
	}

	var resp dto.ParticipantResponse
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.participants.UpdatePayment(ctx, eventID, personID, *req.Payment); err != nil {
			return err
		}
		participant, err := s.participants.Get(ctx, eventID, personID)
		if err != nil {
			return err
		}
		person, err := s.people.GetByID(ctx, personID)
		if err != nil {
			return err
		}
		resp = participantResponse(person, participant)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func participantResponse(person *models.Person, participant *models.EventParticipant) dto.ParticipantResponse {
	return dto.FromParticipant(&models.ParticipantDetail{
		EventID:     participant.EventID,
		PersonID:    person.ID,
		GameName:    person.GameName,
		Name:        person.Name,
		PhoneNumber: person.PhoneNumber,
		IsActive:    person.IsActive,
		Payment:     participant.Payment,
		AddedAt:     participant.AddedAt,
	})
}
