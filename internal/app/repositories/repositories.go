package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/seasonledger/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	PersonRepository      *PersonRepository
	SeasonRepository      *SeasonRepository
	EventRepository       *EventRepository
	ParticipantRepository *ParticipantRepository
	ReportRepository      *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		PersonRepository:      NewPersonRepository(database),
		SeasonRepository:      NewSeasonRepository(database),
		EventRepository:       NewEventRepository(database),
		ParticipantRepository: NewParticipantRepository(database),
		ReportRepository:      NewReportRepository(database),
	}
}

// connProvider hands out the transaction bound to ctx, or the pool.
type connProvider interface {
	Conn(ctx context.Context) db.DBTX
}

func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
