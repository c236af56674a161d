package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/dberrors"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

// ParticipantRepository handles event participant database operations
type ParticipantRepository struct {
	db connProvider
	sb squirrel.StatementBuilderType
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db connProvider) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Add inserts the (event, person) pair. A second insert of the same pair is a conflict.
func (r *ParticipantRepository) Add(ctx context.Context, participant *models.EventParticipant) error {
	query, args, err := r.sb.Insert("event_participants").
		Columns("event_id", "person_id", "payment_cents").
		Values(participant.EventID, participant.PersonID, participant.Payment.Cents()).
		Suffix("RETURNING added_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add participant query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, query, args...).Scan(&participant.AddedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "event_participants_pkey"):
			return apperrors.ErrParticipantExists
		case dberrors.IsForeignKeyError(err, "event_participants_event_id_fkey"):
			return apperrors.ErrEventNotFound
		case dberrors.IsForeignKeyError(err, "event_participants_person_id_fkey"):
			return apperrors.ErrPersonNotFound
		}
		logger.Error().Err(err).
			Int64("eventID", participant.EventID).
			Int64("personID", participant.PersonID).
			Msg("Error adding participant")
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

func (r *ParticipantRepository) Remove(ctx context.Context, eventID, personID int64) error {
	query, args, err := r.sb.Delete("event_participants").
		Where(squirrel.Eq{"event_id": eventID, "person_id": personID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove participant query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Int64("personID", personID).Msg("Error removing participant")
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepository) UpdatePayment(ctx context.Context, eventID, personID int64, payment models.Money) error {
	query, args, err := r.sb.Update("event_participants").
		Set("payment_cents", payment.Cents()).
		Where(squirrel.Eq{"event_id": eventID, "person_id": personID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update participant payment query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Int64("personID", personID).Msg("Error updating participant payment")
		return fmt.Errorf("failed to update participant payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepository) Get(ctx context.Context, eventID, personID int64) (*models.EventParticipant, error) {
	query, args, err := r.sb.Select("event_id", "person_id", "payment_cents", "added_at").
		From("event_participants").
		Where(squirrel.Eq{"event_id": eventID, "person_id": personID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get participant query: %w", err)
	}

	var p models.EventParticipant
	var payment int64
	err = r.db.Conn(ctx).QueryRow(ctx, query, args...).Scan(&p.EventID, &p.PersonID, &payment, &p.AddedAt)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	p.Payment = models.Money(payment)
	return &p, nil
}

// ListByEvent returns the event's participants joined with the person, by game name.
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.ParticipantDetail, error) {
	query, args, err := r.sb.Select(
		"ep.event_id", "p.id", "p.game_name", "p.name", "p.phone_number", "p.is_active",
		"ep.payment_cents", "ep.added_at",
	).
		From("event_participants ep").
		Join("people p ON p.id = ep.person_id").
		Where(squirrel.Eq{"ep.event_id": eventID}).
		OrderBy("p.game_name ASC", "p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list participants query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", eventID).Msg("Error listing participants")
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := []models.ParticipantDetail{}
	for rows.Next() {
		var d models.ParticipantDetail
		var payment int64
		if err := rows.Scan(&d.EventID, &d.PersonID, &d.GameName, &d.Name, &d.PhoneNumber, &d.IsActive, &payment, &d.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant row: %w", err)
		}
		d.Payment = models.Money(payment)
		participants = append(participants, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participant rows: %w", err)
	}
	return participants, nil
}
