package dto

import (
	"github.com/yigit/seasonledger/internal/app/models"
)

// CreateSeasonRequest represents season creation data. StartDate is YYYY-MM-DD.
type CreateSeasonRequest struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	IsActive  *bool  `json:"isActive"`
}

// UpdateSeasonRequest represents season update data
type UpdateSeasonRequest struct {
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	IsActive  *bool  `json:"isActive"`
}

type SeasonResponse struct {
	ID          int64  `json:"id"`
	StartDate   string `json:"startDate"`
	IsActive    bool   `json:"isActive"`
	EventsCount int64  `json:"eventsCount"`
}

// SeasonFilterRequest represents list parameters for seasons
type SeasonFilterRequest struct {
	ListQuery
	PageSize int `form:"pageSize,default=50" binding:"min=1"`
}

type SeasonListResponse struct {
	Seasons []SeasonResponse `json:"seasons"`
	PaginationInfo
}

// FromSeason converts a models.Season to a SeasonResponse
func FromSeason(s *models.Season) SeasonResponse {
	if s == nil {
		return SeasonResponse{}
	}
	return SeasonResponse{
		ID:          s.ID,
		StartDate:   s.StartDate.Format(models.DateLayout),
		IsActive:    s.IsActive,
		EventsCount: s.EventsCount,
	}
}
