package services

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/yigit/seasonledger/internal/app/export"
	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/models/dto/enums"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

// ReportService builds season and person reports and their exported documents.
// Every report reads its page and its totals from one snapshot.
type ReportService interface {
	SeasonReport(ctx context.Context, seasonID int64, req *dto.SeasonReportRequest) (*dto.SeasonReportResponse, error)
	PersonReport(ctx context.Context, personID int64, req *dto.PersonReportRequest) (*dto.PersonReportResponse, error)
	ExportSeasonReport(ctx context.Context, seasonID int64, req *dto.ExportRequest) (*export.Document, error)
	ExportPersonReport(ctx context.Context, personID int64, req *dto.ExportRequest) (*export.Document, error)
	SeasonChart(ctx context.Context, seasonID int64, paidOnly bool) (*export.Document, error)
}

type reportServiceImpl struct {
	reports repositories.ReportStore
	seasons repositories.SeasonStore
	people  repositories.PersonStore
	tx      db.Transactor
	clock   clockwork.Clock
}

// NewReportService creates a new ReportService
func NewReportService(
	reports repositories.ReportStore,
	seasons repositories.SeasonStore,
	people repositories.PersonStore,
	tx db.Transactor,
	clock clockwork.Clock,
) ReportService {
	return &reportServiceImpl{
		reports: reports,
		seasons: seasons,
		people:  people,
		tx:      tx,
		clock:   clock,
	}
}

// loadSeasonReport reads the season and its grouped rows. A zero limit loads every group.
func (s *reportServiceImpl) loadSeasonReport(ctx context.Context, seasonID int64, paidOnly bool, limit, offset uint64) (*models.SeasonReport, error) {
	report := &models.SeasonReport{}
	err := s.tx.WithSnapshot(ctx, func(ctx context.Context) error {
		season, err := s.seasons.GetByID(ctx, seasonID)
		if err != nil {
			return err
		}
		report.Season = season
		report.Rows, report.TotalCount, report.TotalSum, err = s.reports.SeasonReport(ctx, seasonID, paidOnly, limit, offset)
		if err != nil {
			return fmt.Errorf("error building season report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// loadPersonReport resolves the person and the season (the latest active one when
// seasonID is nil) and reads the person's events in it.
func (s *reportServiceImpl) loadPersonReport(ctx context.Context, personID int64, seasonID *int64, opts repositories.ListOptions, limit, offset uint64) (*models.PersonReport, error) {
	report := &models.PersonReport{}
	err := s.tx.WithSnapshot(ctx, func(ctx context.Context) error {
		person, err := s.people.GetByID(ctx, personID)
		if err != nil {
			return err
		}
		report.Person = person

		if seasonID == nil {
			report.Season, err = s.seasons.Latest(ctx)
		} else {
			report.Season, err = s.seasons.GetByID(ctx, *seasonID)
		}
		if err != nil {
			return err
		}

		report.Rows, report.TotalCount, report.TotalSum, err = s.reports.PersonReport(ctx, personID, report.Season.ID, opts, limit, offset)
		if err != nil {
			return fmt.Errorf("error building person report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// SeasonReport groups the season's participant rows by person. Pagination applies after
// grouping; TotalCount and TotalSum cover every group that passes the paidOnly filter.
func (s *reportServiceImpl) SeasonReport(ctx context.Context, seasonID int64, req *dto.SeasonReportRequest) (*dto.SeasonReportResponse, error) {
	if err := helpers.ValidatePage(req.Page, req.PageSize); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.PageSize)
	report, err := s.loadSeasonReport(ctx, seasonID, req.PaidOnly, limit, offset)
	if err != nil {
		return nil, err
	}

	participants := make([]dto.SeasonReportParticipant, 0, len(report.Rows))
	for _, r := range report.Rows {
		participants = append(participants, dto.SeasonReportParticipant{
			Person:       dto.SummarizePerson(r.PersonID, r.GameName, r.Name, r.PhoneNumber),
			EventsCount:  r.EventsCount,
			TotalPayment: r.TotalPayment,
			HasPayment:   r.HasPayment,
		})
	}

	return &dto.SeasonReportResponse{
		Season:         dto.FromSeason(report.Season),
		Participants:   participants,
		TotalSum:       report.TotalSum,
		PaginationInfo: helpers.NewPaginationInfo(report.TotalCount, req.Page, req.PageSize),
	}, nil
}

// PersonReport lists the events a person took part in within a season.
func (s *reportServiceImpl) PersonReport(ctx context.Context, personID int64, req *dto.PersonReportRequest) (*dto.PersonReportResponse, error) {
	if err := helpers.ValidatePage(req.Page, req.PageSize); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(req.Page, req.PageSize)
	report, err := s.loadPersonReport(ctx, personID, req.SeasonID, listOptions(req.ListQuery, req.PageSize), limit, offset)
	if err != nil {
		return nil, err
	}

	events := make([]dto.PersonReportEvent, 0, len(report.Rows))
	for _, r := range report.Rows {
		events = append(events, dto.PersonReportEvent{
			EventID:      r.EventID,
			EventName:    r.EventName,
			DateTime:     r.DateTime,
			EventPayment: r.EventPayment,
			Payment:      r.Payment,
		})
	}

	p := report.Person
	return &dto.PersonReportResponse{
		Person:           dto.SummarizePerson(p.ID, p.GameName, p.Name, p.PhoneNumber),
		Season:           dto.FromSeason(report.Season),
		Events:           events,
		TotalEventsCount: report.TotalCount,
		TotalSum:         report.TotalSum,
		PaginationInfo:   helpers.NewPaginationInfo(report.TotalCount, req.Page, req.PageSize),
	}, nil
}

func parseExportFormat(format string) (enums.ExportFormat, error) {
	switch f := enums.ExportFormat(format); f {
	case "":
		return enums.ExportXLSX, nil
	case enums.ExportXLSX, enums.ExportPDF:
		return f, nil
	default:
		return "", apperrors.NewValidationError("format", "format must be one of: xlsx, pdf")
	}
}

// ExportSeasonReport renders every group of the season report. Totals come from the
// report query, never from the rendered rows.
func (s *reportServiceImpl) ExportSeasonReport(ctx context.Context, seasonID int64, req *dto.ExportRequest) (*export.Document, error) {
	format, err := parseExportFormat(req.Format)
	if err != nil {
		return nil, err
	}

	report, err := s.loadSeasonReport(ctx, seasonID, req.PaidOnly, 0, 0)
	if err != nil {
		return nil, err
	}

	doc, err := export.Season(export.SeasonSheet{
		Season:       report.Season,
		Rows:         report.Rows,
		TotalSum:     report.TotalSum,
		IncludePhone: req.WithPhone(),
		GeneratedAt:  s.clock.Now(),
	}, format)
	if err != nil {
		return nil, fmt.Errorf("error rendering season report: %w", err)
	}

	logger.Ctx(ctx).Info().
		Int64("seasonID", seasonID).
		Str("format", string(format)).
		Int("rows", len(report.Rows)).
		Int("bytes", len(doc.Content)).
		Msg("Season report exported")
	return doc, nil
}

// ExportPersonReport renders all of a person's events in the requested or latest season.
func (s *reportServiceImpl) ExportPersonReport(ctx context.Context, personID int64, req *dto.ExportRequest) (*export.Document, error) {
	format, err := parseExportFormat(req.Format)
	if err != nil {
		return nil, err
	}

	report, err := s.loadPersonReport(ctx, personID, req.SeasonID, repositories.ListOptions{}, 0, 0)
	if err != nil {
		return nil, err
	}

	doc, err := export.Player(export.PlayerSheet{
		Person:      report.Person,
		Season:      report.Season,
		Rows:        report.Rows,
		TotalCount:  report.TotalCount,
		TotalSum:    report.TotalSum,
		GeneratedAt: s.clock.Now(),
	}, format)
	if err != nil {
		return nil, fmt.Errorf("error rendering person report: %w", err)
	}

	logger.Ctx(ctx).Info().
		Int64("personID", personID).
		Int64("seasonID", report.Season.ID).
		Str("format", string(format)).
		Msg("Person report exported")
	return doc, nil
}

// SeasonChart draws the season's per-person totals as a PNG.
func (s *reportServiceImpl) SeasonChart(ctx context.Context, seasonID int64, paidOnly bool) (*export.Document, error) {
	report, err := s.loadSeasonReport(ctx, seasonID, paidOnly, 0, 0)
	if err != nil {
		return nil, err
	}

	doc, err := export.SeasonChart(export.SeasonSheet{
		Season:      report.Season,
		Rows:        report.Rows,
		TotalSum:    report.TotalSum,
		GeneratedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("error rendering season chart: %w", err)
	}
	return doc, nil
}
