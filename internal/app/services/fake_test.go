package services

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
)

// fakeTx runs fn inline. Calls records which kind of transaction was requested.
type fakeTx struct {
	Calls []string
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Calls = append(f.Calls, "tx")
	return fn(ctx)
}

func (f *fakeTx) WithSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	f.Calls = append(f.Calls, "snapshot")
	return fn(ctx)
}

type fakePersonStore struct {
	CreateFunc        func(ctx context.Context, person *models.Person) (int64, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*models.Person, error)
	GetByGameNameFunc func(ctx context.Context, gameName string) (*models.Person, error)
	UpdateFunc        func(ctx context.Context, person *models.Person) error
	SetActiveFunc     func(ctx context.Context, id int64, active bool, at time.Time) error
	ListFunc          func(ctx context.Context, filter repositories.PersonFilter) ([]*models.Person, int64, error)
}

func (f *fakePersonStore) Create(ctx context.Context, person *models.Person) (int64, error) {
	return f.CreateFunc(ctx, person)
}

func (f *fakePersonStore) GetByID(ctx context.Context, id int64) (*models.Person, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakePersonStore) GetByGameName(ctx context.Context, gameName string) (*models.Person, error) {
	return f.GetByGameNameFunc(ctx, gameName)
}

func (f *fakePersonStore) Update(ctx context.Context, person *models.Person) error {
	return f.UpdateFunc(ctx, person)
}

func (f *fakePersonStore) SetActive(ctx context.Context, id int64, active bool, at time.Time) error {
	return f.SetActiveFunc(ctx, id, active, at)
}

func (f *fakePersonStore) List(ctx context.Context, filter repositories.PersonFilter) ([]*models.Person, int64, error) {
	return f.ListFunc(ctx, filter)
}

type fakeSeasonStore struct {
	CreateFunc      func(ctx context.Context, season *models.Season) (int64, error)
	GetByIDFunc     func(ctx context.Context, id int64) (*models.Season, error)
	GetForShareFunc func(ctx context.Context, id int64) (*models.Season, error)
	UpdateFunc      func(ctx context.Context, season *models.Season) error
	SetActiveFunc   func(ctx context.Context, id int64, active bool) error
	ListFunc        func(ctx context.Context, opts repositories.ListOptions) ([]*models.Season, int64, error)
	LatestFunc      func(ctx context.Context) (*models.Season, error)
	CountFunc       func(ctx context.Context) (int64, error)
}

func (f *fakeSeasonStore) Create(ctx context.Context, season *models.Season) (int64, error) {
	return f.CreateFunc(ctx, season)
}

func (f *fakeSeasonStore) GetByID(ctx context.Context, id int64) (*models.Season, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeSeasonStore) GetForShare(ctx context.Context, id int64) (*models.Season, error) {
	return f.GetForShareFunc(ctx, id)
}

func (f *fakeSeasonStore) Update(ctx context.Context, season *models.Season) error {
	return f.UpdateFunc(ctx, season)
}

func (f *fakeSeasonStore) SetActive(ctx context.Context, id int64, active bool) error {
	return f.SetActiveFunc(ctx, id, active)
}

func (f *fakeSeasonStore) List(ctx context.Context, opts repositories.ListOptions) ([]*models.Season, int64, error) {
	return f.ListFunc(ctx, opts)
}

func (f *fakeSeasonStore) Latest(ctx context.Context) (*models.Season, error) {
	return f.LatestFunc(ctx)
}

func (f *fakeSeasonStore) Count(ctx context.Context) (int64, error) {
	return f.CountFunc(ctx)
}

type fakeEventStore struct {
	CreateFunc  func(ctx context.Context, event *models.Event) (int64, error)
	GetByIDFunc func(ctx context.Context, id int64) (*models.Event, error)
	UpdateFunc  func(ctx context.Context, event *models.Event) error
	DeleteFunc  func(ctx context.Context, id int64) error
	ListFunc    func(ctx context.Context, filter repositories.EventFilter) ([]*models.Event, int64, error)
}

func (f *fakeEventStore) Create(ctx context.Context, event *models.Event) (int64, error) {
	return f.CreateFunc(ctx, event)
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeEventStore) Update(ctx context.Context, event *models.Event) error {
	return f.UpdateFunc(ctx, event)
}

func (f *fakeEventStore) Delete(ctx context.Context, id int64) error {
	return f.DeleteFunc(ctx, id)
}

func (f *fakeEventStore) List(ctx context.Context, filter repositories.EventFilter) ([]*models.Event, int64, error) {
	return f.ListFunc(ctx, filter)
}

// memParticipants is an in-memory participant store keyed by (event, person).
type memParticipants struct {
	rows   map[[2]int64]models.EventParticipant
	people map[int64]*models.Person
}

func newMemParticipants(people ...*models.Person) *memParticipants {
	m := &memParticipants{
		rows:   map[[2]int64]models.EventParticipant{},
		people: map[int64]*models.Person{},
	}
	for _, p := range people {
		m.people[p.ID] = p
	}
	return m
}

func (m *memParticipants) Add(_ context.Context, p *models.EventParticipant) error {
	key := [2]int64{p.EventID, p.PersonID}
	if _, ok := m.rows[key]; ok {
		return apperrors.ErrParticipantExists
	}
	p.AddedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.rows[key] = *p
	return nil
}

func (m *memParticipants) Remove(_ context.Context, eventID, personID int64) error {
	key := [2]int64{eventID, personID}
	if _, ok := m.rows[key]; !ok {
		return apperrors.ErrParticipantNotFound
	}
	delete(m.rows, key)
	return nil
}

func (m *memParticipants) UpdatePayment(_ context.Context, eventID, personID int64, payment models.Money) error {
	key := [2]int64{eventID, personID}
	row, ok := m.rows[key]
	if !ok {
		return apperrors.ErrParticipantNotFound
	}
	row.Payment = payment
	m.rows[key] = row
	return nil
}

func (m *memParticipants) Get(_ context.Context, eventID, personID int64) (*models.EventParticipant, error) {
	row, ok := m.rows[[2]int64{eventID, personID}]
	if !ok {
		return nil, apperrors.ErrParticipantNotFound
	}
	return &row, nil
}

func (m *memParticipants) ListByEvent(_ context.Context, eventID int64) ([]models.ParticipantDetail, error) {
	out := []models.ParticipantDetail{}
	for key, row := range m.rows {
		if key[0] != eventID {
			continue
		}
		p := m.people[key[1]]
		out = append(out, models.ParticipantDetail{
			EventID:     eventID,
			PersonID:    p.ID,
			GameName:    p.GameName,
			Name:        p.Name,
			PhoneNumber: p.PhoneNumber,
			IsActive:    p.IsActive,
			Payment:     row.Payment,
			AddedAt:     row.AddedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameName != out[j].GameName {
			return out[i].GameName < out[j].GameName
		}
		return out[i].PersonID < out[j].PersonID
	})
	return out, nil
}

type fakeReportStore struct {
	SeasonReportFunc func(ctx context.Context, seasonID int64, paidOnly bool, limit, offset uint64) ([]models.SeasonReportRow, int64, models.Money, error)
	PersonReportFunc func(ctx context.Context, personID, seasonID int64, opts repositories.ListOptions, limit, offset uint64) ([]models.PersonReportRow, int64, models.Money, error)
}

func (f *fakeReportStore) SeasonReport(ctx context.Context, seasonID int64, paidOnly bool, limit, offset uint64) ([]models.SeasonReportRow, int64, models.Money, error) {
	return f.SeasonReportFunc(ctx, seasonID, paidOnly, limit, offset)
}

func (f *fakeReportStore) PersonReport(ctx context.Context, personID, seasonID int64, opts repositories.ListOptions, limit, offset uint64) ([]models.PersonReportRow, int64, models.Money, error) {
	return f.PersonReportFunc(ctx, personID, seasonID, opts, limit, offset)
}

var (
	_ repositories.PersonStore      = (*fakePersonStore)(nil)
	_ repositories.SeasonStore      = (*fakeSeasonStore)(nil)
	_ repositories.EventStore       = (*fakeEventStore)(nil)
	_ repositories.ParticipantStore = (*memParticipants)(nil)
	_ repositories.ReportStore      = (*fakeReportStore)(nil)
)
