package repositories

import (
	"context"
	"time"

	"github.com/yigit/seasonledger/internal/app/models"
)

// ListOptions carries the raw paging and sorting parameters of a list request.
// Sort fields are API names; each repository maps them to columns.
type ListOptions struct {
	Page          int
	PageSize      int
	SortBy        string
	SortDirection string
}

// PersonFilter narrows a people listing.
type PersonFilter struct {
	ListOptions
	Search string
	Active *bool
}

// EventFilter narrows an event listing.
type EventFilter struct {
	ListOptions
	SeasonID *int64
}

type PersonStore interface {
	Create(ctx context.Context, person *models.Person) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Person, error)
	GetByGameName(ctx context.Context, gameName string) (*models.Person, error)
	Update(ctx context.Context, person *models.Person) error
	SetActive(ctx context.Context, id int64, active bool, at time.Time) error
	List(ctx context.Context, filter PersonFilter) ([]*models.Person, int64, error)
}

type SeasonStore interface {
	Create(ctx context.Context, season *models.Season) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Season, error)
	GetForShare(ctx context.Context, id int64) (*models.Season, error)
	Update(ctx context.Context, season *models.Season) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, opts ListOptions) ([]*models.Season, int64, error)
	Latest(ctx context.Context) (*models.Season, error)
	Count(ctx context.Context) (int64, error)
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter EventFilter) ([]*models.Event, int64, error)
}

type ParticipantStore interface {
	Add(ctx context.Context, participant *models.EventParticipant) error
	Remove(ctx context.Context, eventID, personID int64) error
	UpdatePayment(ctx context.Context, eventID, personID int64, payment models.Money) error
	Get(ctx context.Context, eventID, personID int64) (*models.EventParticipant, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.ParticipantDetail, error)
}

// ReportStore computes report aggregates in SQL. A zero limit returns every row.
type ReportStore interface {
	SeasonReport(ctx context.Context, seasonID int64, paidOnly bool, limit, offset uint64) ([]models.SeasonReportRow, int64, models.Money, error)
	PersonReport(ctx context.Context, personID, seasonID int64, opts ListOptions, limit, offset uint64) ([]models.PersonReportRow, int64, models.Money, error)
}

var (
	_ PersonStore      = (*PersonRepository)(nil)
	_ SeasonStore      = (*SeasonRepository)(nil)
	_ EventStore       = (*EventRepository)(nil)
	_ ParticipantStore = (*ParticipantRepository)(nil)
	_ ReportStore      = (*ReportRepository)(nil)
)
