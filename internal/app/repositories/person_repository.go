package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/dberrors"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

var personColumns = []string{
	"p.id", "p.game_name", "p.name", "p.phone_number", "p.password_hash",
	"p.role", "p.is_active", "p.created_at", "p.updated_at",
}

// likeEscaper makes LIKE wildcards in user input match literally. Backslash is
// the default LIKE escape character in PostgreSQL.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PersonRepository handles person database operations
type PersonRepository struct {
	db connProvider
	sb squirrel.StatementBuilderType
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db connProvider) *PersonRepository {
	return &PersonRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanPerson(row pgx.Row) (*models.Person, error) {
	var p models.Person
	var role string
	err := row.Scan(
		&p.ID, &p.GameName, &p.Name, &p.PhoneNumber, &p.PasswordHash,
		&role, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Role = models.Role(role)
	return &p, nil
}

// Create inserts a person and fills ID and timestamps.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) (int64, error) {
	query, args, err := r.sb.Insert("people").
		Columns("game_name", "name", "phone_number", "password_hash", "role", "is_active").
		Values(person.GameName, person.Name, person.PhoneNumber, person.PasswordHash, string(person.Role), person.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create person query: %w", err)
	}

	err = r.db.Conn(ctx).QueryRow(ctx, query, args...).Scan(&person.ID, &person.CreatedAt, &person.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("gameName", person.GameName).Msg("Error creating person")
		return 0, fmt.Errorf("failed to create person: %w", err)
	}
	return person.ID, nil
}

// GetByID returns ErrPersonNotFound when no row matches.
func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	return r.getOne(ctx, squirrel.Eq{"p.id": id})
}

// GetByGameName returns the lowest-id person with the exact game name.
func (r *PersonRepository) GetByGameName(ctx context.Context, gameName string) (*models.Person, error) {
	return r.getOne(ctx, squirrel.Eq{"p.game_name": gameName})
}

func (r *PersonRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Person, error) {
	query, args, err := r.sb.Select(personColumns...).
		From("people p").
		Where(where).
		OrderBy("p.id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get person query: %w", err)
	}

	person, err := scanPerson(r.db.Conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrPersonNotFound
		}
		logger.Error().Err(err).Msg("Error fetching person")
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// Update writes the editable fields. An empty PasswordHash leaves the stored hash in place.
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	builder := r.sb.Update("people").
		Set("game_name", person.GameName).
		Set("name", person.Name).
		Set("phone_number", person.PhoneNumber).
		Set("role", string(person.Role)).
		Set("is_active", person.IsActive).
		Set("updated_at", person.UpdatedAt).
		Where(squirrel.Eq{"id": person.ID})
	if person.PasswordHash != "" {
		builder = builder.Set("password_hash", person.PasswordHash)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update person query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("personID", person.ID).Msg("Error updating person")
		return fmt.Errorf("failed to update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// SetActive flips the active flag.
func (r *PersonRepository) SetActive(ctx context.Context, id int64, active bool, at time.Time) error {
	query, args, err := r.sb.Update("people").
		Set("is_active", active).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set person active query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Int64("personID", id).Bool("active", active).Msg("Error changing person state")
		return fmt.Errorf("failed to change person state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPersonNotFound
	}
	return nil
}

// List returns one page of people and the total count matching the filter.
func (r *PersonRepository) List(ctx context.Context, filter PersonFilter) ([]*models.Person, int64, error) {
	where := squirrel.And{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"p.game_name": pattern},
			squirrel.ILike{"p.name": pattern},
		})
	}
	if filter.Active != nil {
		where = append(where, squirrel.Eq{"p.is_active": *filter.Active})
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("people p").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count people query: %w", err)
	}

	conn := r.db.Conn(ctx)

	var total int64
	if err := conn.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting people")
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}
	if total == 0 {
		return []*models.Person{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	query, args, err := r.sb.Select(personColumns...).
		From("people p").
		Where(where).
		OrderBy(personSort.orderBy(filter.SortBy, filter.SortDirection)...).
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list people query: %w", err)
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing people")
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := make([]*models.Person, 0, limit)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan person row: %w", err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating person rows: %w", err)
	}

	return people, total, nil
}
