package services

import (
	"github.com/jonboulle/clockwork"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/auth"
)

// Services holds every service the HTTP layer talks to.
type Services struct {
	PersonService PersonService
	SeasonService SeasonService
	EventService  EventService
	ReportService ReportService
}

// NewServices wires the services onto the repositories. All of them share one
// transactor and one clock.
func NewServices(repos *repositories.Repositories, tx db.Transactor, hasher *auth.PasswordHasher, clock clockwork.Clock) *Services {
	return &Services{
		PersonService: NewPersonService(repos.PersonRepository, tx, hasher, clock),
		SeasonService: NewSeasonService(repos.SeasonRepository, tx),
		EventService: NewEventService(
			repos.EventRepository,
			repos.SeasonRepository,
			repos.PersonRepository,
			repos.ParticipantRepository,
			tx,
			clock,
		),
		ReportService: NewReportService(repos.ReportRepository, repos.SeasonRepository, repos.PersonRepository, tx, clock),
	}
}
