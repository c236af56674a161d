package controllers_test

import (
	"context"

	"github.com/yigit/seasonledger/internal/app/export"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/services"
)

type fakePersonService struct {
	CreatePersonFunc    func(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error)
	GetPersonFunc       func(ctx context.Context, id int64) (*dto.PersonResponse, error)
	UpdatePersonFunc    func(ctx context.Context, id int64, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error)
	SetPersonActiveFunc func(ctx context.Context, id int64, active bool) (*dto.PersonResponse, error)
	ListPeopleFunc      func(ctx context.Context, filter *dto.PersonFilterRequest) (*dto.PersonListResponse, error)
}

func (f *fakePersonService) CreatePerson(ctx context.Context, req *dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	return f.CreatePersonFunc(ctx, req)
}

func (f *fakePersonService) GetPerson(ctx context.Context, id int64) (*dto.PersonResponse, error) {
	return f.GetPersonFunc(ctx, id)
}

func (f *fakePersonService) UpdatePerson(ctx context.Context, id int64, req *dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	return f.UpdatePersonFunc(ctx, id, req)
}

func (f *fakePersonService) SetPersonActive(ctx context.Context, id int64, active bool) (*dto.PersonResponse, error) {
	return f.SetPersonActiveFunc(ctx, id, active)
}

func (f *fakePersonService) ListPeople(ctx context.Context, filter *dto.PersonFilterRequest) (*dto.PersonListResponse, error) {
	return f.ListPeopleFunc(ctx, filter)
}

type fakeSeasonService struct {
	CreateSeasonFunc    func(ctx context.Context, req *dto.CreateSeasonRequest) (*dto.SeasonResponse, error)
	GetSeasonFunc       func(ctx context.Context, id int64) (*dto.SeasonResponse, error)
	UpdateSeasonFunc    func(ctx context.Context, id int64, req *dto.UpdateSeasonRequest) (*dto.SeasonResponse, error)
	SetSeasonActiveFunc func(ctx context.Context, id int64, active bool) (*dto.SeasonResponse, error)
	ListSeasonsFunc     func(ctx context.Context, filter *dto.SeasonFilterRequest) (*dto.SeasonListResponse, error)
	LatestSeasonFunc    func(ctx context.Context) (*dto.SeasonResponse, error)
}

func (f *fakeSeasonService) CreateSeason(ctx context.Context, req *dto.CreateSeasonRequest) (*dto.SeasonResponse, error) {
	return f.CreateSeasonFunc(ctx, req)
}

func (f *fakeSeasonService) GetSeason(ctx context.Context, id int64) (*dto.SeasonResponse, error) {
	return f.GetSeasonFunc(ctx, id)
}

func (f *fakeSeasonService) UpdateSeason(ctx context.Context, id int64, req *dto.UpdateSeasonRequest) (*dto.SeasonResponse, error) {
	return f.UpdateSeasonFunc(ctx, id, req)
}

func (f *fakeSeasonService) SetSeasonActive(ctx context.Context, id int64, active bool) (*dto.SeasonResponse, error) {
	return f.SetSeasonActiveFunc(ctx, id, active)
}

func (f *fakeSeasonService) ListSeasons(ctx context.Context, filter *dto.SeasonFilterRequest) (*dto.SeasonListResponse, error) {
	return f.ListSeasonsFunc(ctx, filter)
}

func (f *fakeSeasonService) LatestSeason(ctx context.Context) (*dto.SeasonResponse, error) {
	return f.LatestSeasonFunc(ctx)
}

type fakeEventService struct {
	CreateEventFunc              func(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetEventFunc                 func(ctx context.Context, id int64) (*dto.EventResponse, error)
	UpdateEventFunc              func(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEventFunc              func(ctx context.Context, id int64) error
	ListEventsFunc               func(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error)
	ListParticipantsFunc         func(ctx context.Context, eventID int64) (*dto.ParticipantListResponse, error)
	AddParticipantFunc           func(ctx context.Context, eventID, personID int64, req *dto.AddParticipantRequest) (*dto.ParticipantResponse, error)
	RemoveParticipantFunc        func(ctx context.Context, eventID, personID int64) error
	UpdateParticipantPaymentFunc func(ctx context.Context, eventID, personID int64, req *dto.UpdateParticipantPaymentRequest) (*dto.ParticipantResponse, error)
}

func (f *fakeEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	return f.CreateEventFunc(ctx, req)
}

func (f *fakeEventService) GetEvent(ctx context.Context, id int64) (*dto.EventResponse, error) {
	return f.GetEventFunc(ctx, id)
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	return f.UpdateEventFunc(ctx, id, req)
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id int64) error {
	return f.DeleteEventFunc(ctx, id)
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter *dto.EventFilterRequest) (*dto.EventListResponse, error) {
	return f.ListEventsFunc(ctx, filter)
}

func (f *fakeEventService) ListParticipants(ctx context.Context, eventID int64) (*dto.ParticipantListResponse, error) {
	return f.ListParticipantsFunc(ctx, eventID)
}

func (f *fakeEventService) AddParticipant(ctx context.Context, eventID, personID int64, req *dto.AddParticipantRequest) (*dto.ParticipantResponse, error) {
	return f.AddParticipantFunc(ctx, eventID, personID, req)
}

func (f *fakeEventService) RemoveParticipant(ctx context.Context, eventID, personID int64) error {
	return f.RemoveParticipantFunc(ctx, eventID, personID)
}

func (f *fakeEventService) UpdateParticipantPayment(ctx context.Context, eventID, personID int64, req *dto.UpdateParticipantPaymentRequest) (*dto.ParticipantResponse, error) {
	return f.UpdateParticipantPaymentFunc(ctx, eventID, personID, req)
}

type fakeReportService struct {
	SeasonReportFunc       func(ctx context.Context, seasonID int64, req *dto.SeasonReportRequest) (*dto.SeasonReportResponse, error)
	PersonReportFunc       func(ctx context.Context, personID int64, req *dto.PersonReportRequest) (*dto.PersonReportResponse, error)
	ExportSeasonReportFunc func(ctx context.Context, seasonID int64, req *dto.ExportRequest) (*export.Document, error)
	ExportPersonReportFunc func(ctx context.Context, personID int64, req *dto.ExportRequest) (*export.Document, error)
	SeasonChartFunc        func(ctx context.Context, seasonID int64, paidOnly bool) (*export.Document, error)
}

func (f *fakeReportService) SeasonReport(ctx context.Context, seasonID int64, req *dto.SeasonReportRequest) (*dto.SeasonReportResponse, error) {
	return f.SeasonReportFunc(ctx, seasonID, req)
}

func (f *fakeReportService) PersonReport(ctx context.Context, personID int64, req *dto.PersonReportRequest) (*dto.PersonReportResponse, error) {
	return f.PersonReportFunc(ctx, personID, req)
}

func (f *fakeReportService) ExportSeasonReport(ctx context.Context, seasonID int64, req *dto.ExportRequest) (*export.Document, error) {
	return f.ExportSeasonReportFunc(ctx, seasonID, req)
}

func (f *fakeReportService) ExportPersonReport(ctx context.Context, personID int64, req *dto.ExportRequest) (*export.Document, error) {
	return f.ExportPersonReportFunc(ctx, personID, req)
}

func (f *fakeReportService) SeasonChart(ctx context.Context, seasonID int64, paidOnly bool) (*export.Document, error) {
	return f.SeasonChartFunc(ctx, seasonID, paidOnly)
}

var (
	_ services.PersonService = (*fakePersonService)(nil)
	_ services.SeasonService = (*fakeSeasonService)(nil)
	_ services.EventService  = (*fakeEventService)(nil)
	_ services.ReportService = (*fakeReportService)(nil)
)
