package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

// ReportRepository aggregates participant rows. Callers run both queries of a report
// inside one snapshot transaction so totals and pages agree.
type ReportRepository struct {
	db connProvider
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db connProvider) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// seasonGroups is one row per person who took part in any event of the season.
func (r *ReportRepository) seasonGroups(seasonID int64, paidOnly bool) squirrel.SelectBuilder {
	grouped := r.sb.Select(
		"p.id AS person_id", "p.game_name", "p.name", "p.phone_number",
		"COUNT(*) AS events_count",
		"COALESCE(SUM(ep.payment_cents), 0)::BIGINT AS total_payment",
		"BOOL_OR(ep.payment_cents > 0) AS has_payment",
	).
		From("event_participants ep").
		Join("events e ON e.id = ep.event_id").
		Join("people p ON p.id = ep.person_id").
		Where(squirrel.Eq{"e.season_id": seasonID}).
		GroupBy("p.id", "p.game_name", "p.name", "p.phone_number")
	if paidOnly {
		grouped = grouped.Having("BOOL_OR(ep.payment_cents > 0)")
	}
	return grouped
}

// SeasonReport returns a page of per-person aggregates ordered by game name then id,
// plus the group count and payment sum over every group.
func (r *ReportRepository) SeasonReport(ctx context.Context, seasonID int64, paidOnly bool, limit, offset uint64) ([]models.SeasonReportRow, int64, models.Money, error) {
	conn := r.db.Conn(ctx)

	totalsSQL, totalsArgs, err := r.sb.Select("COUNT(*)", "COALESCE(SUM(g.total_payment), 0)::BIGINT").
		FromSelect(r.seasonGroups(seasonID, paidOnly), "g").
		ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build season report totals query: %w", err)
	}

	var total, sum int64
	if err := conn.QueryRow(ctx, totalsSQL, totalsArgs...).Scan(&total, &sum); err != nil {
		logger.Error().Err(err).Int64("seasonID", seasonID).Msg("Error computing season report totals")
		return nil, 0, 0, fmt.Errorf("failed to compute season report totals: %w", err)
	}
	if total == 0 {
		return []models.SeasonReportRow{}, 0, 0, nil
	}

	page := r.sb.Select(
		"g.person_id", "g.game_name", "g.name", "g.phone_number",
		"g.events_count", "g.total_payment", "g.has_payment",
	).
		FromSelect(r.seasonGroups(seasonID, paidOnly), "g").
		OrderBy("g.game_name ASC", "g.person_id ASC")
	if limit > 0 {
		page = page.Limit(limit).Offset(offset)
	}

	query, args, err := page.ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build season report query: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("seasonID", seasonID).Msg("Error querying season report")
		return nil, 0, 0, fmt.Errorf("failed to query season report: %w", err)
	}
	defer rows.Close()

	result := []models.SeasonReportRow{}
	for rows.Next() {
		var row models.SeasonReportRow
		var payment int64
		if err := rows.Scan(&row.PersonID, &row.GameName, &row.Name, &row.PhoneNumber, &row.EventsCount, &payment, &row.HasPayment); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan season report row: %w", err)
		}
		row.TotalPayment = models.Money(payment)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("error iterating season report rows: %w", err)
	}

	return result, total, models.Money(sum), nil
}

// PersonReport returns a page of the events a person took part in within a season,
// plus the event count and the person's payment sum over all of them.
func (r *ReportRepository) PersonReport(ctx context.Context, personID, seasonID int64, opts ListOptions, limit, offset uint64) ([]models.PersonReportRow, int64, models.Money, error) {
	conn := r.db.Conn(ctx)
	where := squirrel.Eq{"ep.person_id": personID, "e.season_id": seasonID}

	totalsSQL, totalsArgs, err := r.sb.Select("COUNT(*)", "COALESCE(SUM(ep.payment_cents), 0)::BIGINT").
		From("event_participants ep").
		Join("events e ON e.id = ep.event_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build person report totals query: %w", err)
	}

	var total, sum int64
	if err := conn.QueryRow(ctx, totalsSQL, totalsArgs...).Scan(&total, &sum); err != nil {
		logger.Error().Err(err).Int64("personID", personID).Int64("seasonID", seasonID).Msg("Error computing person report totals")
		return nil, 0, 0, fmt.Errorf("failed to compute person report totals: %w", err)
	}
	if total == 0 {
		return []models.PersonReportRow{}, 0, 0, nil
	}

	page := r.sb.Select("e.id", "e.name", "e.date_time", "e.payment_cents", "ep.payment_cents").
		From("event_participants ep").
		Join("events e ON e.id = ep.event_id").
		Where(where).
		OrderBy(personReportSort.orderBy(opts.SortBy, opts.SortDirection)...)
	if limit > 0 {
		page = page.Limit(limit).Offset(offset)
	}

	query, args, err := page.ToSql()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to build person report query: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("personID", personID).Msg("Error querying person report")
		return nil, 0, 0, fmt.Errorf("failed to query person report: %w", err)
	}
	defer rows.Close()

	result := []models.PersonReportRow{}
	for rows.Next() {
		var row models.PersonReportRow
		var eventPayment, payment int64
		if err := rows.Scan(&row.EventID, &row.EventName, &row.DateTime, &eventPayment, &payment); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan person report row: %w", err)
		}
		row.EventPayment = models.Money(eventPayment)
		row.Payment = models.Money(payment)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("error iterating person report rows: %w", err)
	}

	return result, total, models.Money(sum), nil
}
