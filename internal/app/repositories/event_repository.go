package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/dberrors"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

var eventColumns = []string{
	"e.id", "e.name", "e.season_id", "e.payment_cents", "e.date_time", "e.created_at",
	"(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id) AS participant_count",
}

// EventRepository handles event database operations
type EventRepository struct {
	db connProvider
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db connProvider) *EventRepository {
	return &EventRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var payment int64
	if err := row.Scan(&e.ID, &e.Name, &e.SeasonID, &payment, &e.DateTime, &e.CreatedAt, &e.ParticipantCount); err != nil {
		return nil, err
	}
	e.Payment = models.Money(payment)
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	query, args, err := r.sb.Insert("events").
		Columns("name", "season_id", "payment_cents", "date_time").
		Values(event.Name, event.SeasonID, event.Payment.Cents(), event.DateTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create event query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt); err != nil {
		if dberrors.IsForeignKeyError(err, "events_season_id_fkey") {
			return 0, apperrors.ErrSeasonNotActive
		}
		logger.Error().Err(err).Int64("seasonID", event.SeasonID).Msg("Error creating event")
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	return event.ID, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query, args, err := r.sb.Select(eventColumns...).
		From("events e").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scanEvent(r.db.Conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Int64("eventID", id).Msg("Error fetching event")
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query, args, err := r.sb.Update("events").
		Set("name", event.Name).
		Set("season_id", event.SeasonID).
		Set("payment_cents", event.Payment.Cents()).
		Set("date_time", event.DateTime).
		Where(squirrel.Eq{"id": event.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update event query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsForeignKeyError(err, "events_season_id_fkey") {
			return apperrors.ErrSeasonNotActive
		}
		logger.Error().Err(err).Int64("eventID", event.ID).Msg("Error updating event")
		return fmt.Errorf("failed to update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes the event; participant rows go with it through ON DELETE CASCADE.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete event query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error deleting event")
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// List returns one page of events with participant counts.
func (r *EventRepository) List(ctx context.Context, filter EventFilter) ([]*models.Event, int64, error) {
	where := squirrel.And{}
	if filter.SeasonID != nil {
		where = append(where, squirrel.Eq{"e.season_id": *filter.SeasonID})
	}

	conn := r.db.Conn(ctx)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("events e").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count events query: %w", err)
	}

	var total int64
	if err := conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting events")
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}
	if total == 0 {
		return []*models.Event{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query, args, err := r.sb.Select(eventColumns...).
		From("events e").
		Where(where).
		OrderBy(eventSort.orderBy(filter.SortBy, filter.SortDirection)...).
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0, limit)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, total, nil
}
