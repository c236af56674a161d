package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/dberrors"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

const seasonEventsCount = "(SELECT COUNT(*) FROM events ev WHERE ev.season_id = s.id) AS events_count"

// SeasonRepository handles season database operations
type SeasonRepository struct {
	db connProvider
	sb squirrel.StatementBuilderType
}

// NewSeasonRepository creates a new SeasonRepository
func NewSeasonRepository(db connProvider) *SeasonRepository {
	return &SeasonRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func (r *SeasonRepository) selectSeason() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.start_date", "s.is_active", "s.created_at", seasonEventsCount).
		From("seasons s")
}

func scanSeason(row pgx.Row) (*models.Season, error) {
	var s models.Season
	if err := row.Scan(&s.ID, &s.StartDate, &s.IsActive, &s.CreatedAt, &s.EventsCount); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SeasonRepository) Create(ctx context.Context, season *models.Season) (int64, error) {
	query, args, err := r.sb.Insert("seasons").
		Columns("start_date", "is_active").
		Values(season.StartDate, season.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create season query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, query, args...).Scan(&season.ID, &season.CreatedAt); err != nil {
		logger.Error().Err(err).Time("startDate", season.StartDate).Msg("Error creating season")
		return 0, fmt.Errorf("failed to create season: %w", err)
	}
	return season.ID, nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (*models.Season, error) {
	return r.getOne(ctx, r.selectSeason().Where(squirrel.Eq{"s.id": id}))
}

// GetForShare reads the season and holds a share lock on it until the surrounding
// transaction ends, so it cannot be deactivated concurrently.
func (r *SeasonRepository) GetForShare(ctx context.Context, id int64) (*models.Season, error) {
	return r.getOne(ctx, r.sb.Select("s.id", "s.start_date", "s.is_active", "s.created_at", "0").
		From("seasons s").
		Where(squirrel.Eq{"s.id": id}).
		Suffix("FOR SHARE"))
}

// Latest is the active season with the greatest start date, ties broken by greatest id.
func (r *SeasonRepository) Latest(ctx context.Context) (*models.Season, error) {
	season, err := r.getOne(ctx, r.selectSeason().
		Where(squirrel.Eq{"s.is_active": true}).
		OrderBy("s.start_date DESC", "s.id DESC").
		Limit(1))
	if errors.Is(err, apperrors.ErrSeasonNotFound) {
		return nil, apperrors.ErrNoLatestSeason
	}
	return season, err
}

func (r *SeasonRepository) getOne(ctx context.Context, builder squirrel.SelectBuilder) (*models.Season, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get season query: %w", err)
	}

	season, err := scanSeason(r.db.Conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrSeasonNotFound
		}
		logger.Error().Err(err).Msg("Error fetching season")
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return season, nil
}

func (r *SeasonRepository) Update(ctx context.Context, season *models.Season) error {
	query, args, err := r.sb.Update("seasons").
		Set("start_date", season.StartDate).
		Set("is_active", season.IsActive).
		Where(squirrel.Eq{"id": season.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update season query: %w", err)
	}
	return r.execOne(ctx, season.ID, query, args)
}

func (r *SeasonRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := r.sb.Update("seasons").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set season active query: %w", err)
	}
	return r.execOne(ctx, id, query, args)
}

func (r *SeasonRepository) execOne(ctx context.Context, id int64, query string, args []interface{}) error {
	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("seasonID", id).Msg("Error updating season")
		return fmt.Errorf("failed to update season: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSeasonNotFound
	}
	return nil
}

func (r *SeasonRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.Conn(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM seasons").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count seasons: %w", err)
	}
	return total, nil
}

// List returns one page of seasons with their event counts.
func (r *SeasonRepository) List(ctx context.Context, opts ListOptions) ([]*models.Season, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error counting seasons")
		return nil, 0, err
	}
	if total == 0 {
		return []*models.Season{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(opts.Page, opts.PageSize)
	query, args, err := r.selectSeason().
		OrderBy(seasonSort.orderBy(opts.SortBy, opts.SortDirection)...).
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list seasons query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing seasons")
		return nil, 0, fmt.Errorf("failed to list seasons: %w", err)
	}
	defer rows.Close()

	seasons := make([]*models.Season, 0, limit)
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan season row: %w", err)
		}
		seasons = append(seasons, season)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating season rows: %w", err)
	}

	return seasons, total, nil
}
