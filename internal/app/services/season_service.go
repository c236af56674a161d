package services

import (
	"context"
	"fmt"

	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/app/repositories"
	"github.com/yigit/seasonledger/internal/db"
	"github.com/yigit/seasonledger/internal/pkg/helpers"
	"github.com/yigit/seasonledger/internal/pkg/logger"
)

// SeasonService defines the interface for season operations
type SeasonService interface {
	CreateSeason(ctx context.Context, req *dto.CreateSeasonRequest) (*dto.SeasonResponse, error)
	GetSeason(ctx context.Context, id int64) (*dto.SeasonResponse, error)
	UpdateSeason(ctx context.Context, id int64, req *dto.UpdateSeasonRequest) (*dto.SeasonResponse, error)
	SetSeasonActive(ctx context.Context, id int64, active bool) (*dto.SeasonResponse, error)
	ListSeasons(ctx context.Context, filter *dto.SeasonFilterRequest) (*dto.SeasonListResponse, error)
	LatestSeason(ctx context.Context) (*dto.SeasonResponse, error)
}

type seasonServiceImpl struct {
	seasons repositories.SeasonStore
	tx      db.Transactor
}

// NewSeasonService creates a new SeasonService
func NewSeasonService(seasons repositories.SeasonStore, tx db.Transactor) SeasonService {
	return &seasonServiceImpl{
		seasons: seasons,
		tx:      tx,
	}
}

func (s *seasonServiceImpl) CreateSeason(ctx context.Context, req *dto.CreateSeasonRequest) (*dto.SeasonResponse, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	season := &models.Season{
		StartDate: startDate,
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
	if _, err := s.seasons.Create(ctx, season); err != nil {
		return nil, fmt.Errorf("error creating season: %w", err)
	}

	logger.Ctx(ctx).Info().Int64("seasonID", season.ID).Str("startDate", req.StartDate).Msg("Season created")
	resp := dto.FromSeason(season)
	return &resp, nil
}

func (s *seasonServiceImpl) GetSeason(ctx context.Context, id int64) (*dto.SeasonResponse, error) {
	season, err := s.seasons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSeason(season)
	return &resp, nil
}

// UpdateSeason changes the start date and, when given, the active flag. Existing events are untouched.
func (s *seasonServiceImpl) UpdateSeason(ctx context.Context, id int64, req *dto.UpdateSeasonRequest) (*dto.SeasonResponse, error) {
	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	var updated *models.Season
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		season, err := s.seasons.GetByID(ctx, id)
		if err != nil {
			return err
		}
		season.StartDate = startDate
		if req.IsActive != nil {
			season.IsActive = *req.IsActive
		}
		if err := s.seasons.Update(ctx, season); err != nil {
			return err
		}
		updated = season
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.FromSeason(updated)
	return &resp, nil
}

// SetSeasonActive flips the active flag. Events already in the season stay where they are.
func (s *seasonServiceImpl) SetSeasonActive(ctx context.Context, id int64, active bool) (*dto.SeasonResponse, error) {
	var season *models.Season
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.seasons.SetActive(ctx, id, active); err != nil {
			return err
		}
		var err error
		season, err = s.seasons.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("seasonID", id).Bool("active", active).Msg("Season state changed")
	resp := dto.FromSeason(season)
	return &resp, nil
}

func (s *seasonServiceImpl) ListSeasons(ctx context.Context, filter *dto.SeasonFilterRequest) (*dto.SeasonListResponse, error) {
	if err := helpers.ValidatePage(filter.Page, filter.PageSize); err != nil {
		return nil, err
	}

	var seasons []*models.Season
	var total int64
	err := s.tx.WithSnapshot(ctx, func(ctx context.Context) error {
		var err error
		seasons, total, err = s.seasons.List(ctx, listOptions(filter.ListQuery, filter.PageSize))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}

	items := make([]dto.SeasonResponse, 0, len(seasons))
	for _, season := range seasons {
		items = append(items, dto.FromSeason(season))
	}
	return &dto.SeasonListResponse{
		Seasons:        items,
		PaginationInfo: helpers.NewPaginationInfo(total, filter.Page, filter.PageSize),
	}, nil
}

// LatestSeason returns the active season with the greatest start date.
func (s *seasonServiceImpl) LatestSeason(ctx context.Context) (*dto.SeasonResponse, error) {
	season, err := s.seasons.Latest(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.FromSeason(season)
	return &resp, nil
}
