package dto

import (
	"time"

	"github.com/yigit/seasonledger/internal/app/models"
)

// SeasonReportRequest represents season report parameters
type SeasonReportRequest struct {
	Page     int  `form:"page,default=1" binding:"min=1"`
	PageSize int  `form:"pageSize,default=50" binding:"min=1"`
	PaidOnly bool `form:"paidOnly"`
}

type SeasonReportParticipant struct {
	Person       PersonSummary `json:"person"`
	EventsCount  int64         `json:"eventsCount"`
	TotalPayment models.Money  `json:"totalPayment"`
	HasPayment   bool          `json:"hasPayment"`
}

// SeasonReportResponse carries one page of grouped participants. TotalCount and
// TotalSum cover every group matching the filter, not just the page.
type SeasonReportResponse struct {
	Season       SeasonResponse            `json:"season"`
	Participants []SeasonReportParticipant `json:"participants"`
	TotalSum     models.Money              `json:"totalSum"`
	PaginationInfo
}

// PersonReportRequest represents person report parameters. SeasonID falls back to the latest season.
type PersonReportRequest struct {
	ListQuery
	PageSize int    `form:"pageSize,default=50" binding:"min=1"`
	SeasonID *int64 `form:"seasonId" binding:"omitempty,min=1"`
}

type PersonReportEvent struct {
	EventID      int64        `json:"eventId"`
	EventName    string       `json:"eventName"`
	DateTime     time.Time    `json:"dateTime"`
	EventPayment models.Money `json:"eventPayment"`
	Payment      models.Money `json:"payment"`
}

type PersonReportResponse struct {
	Person           PersonSummary       `json:"person"`
	Season           SeasonResponse      `json:"season"`
	Events           []PersonReportEvent `json:"events"`
	TotalEventsCount int64               `json:"totalEventsCount"`
	TotalSum         models.Money        `json:"totalSum"`
	PaginationInfo
}

// ExportRequest represents query parameters of export endpoints
type ExportRequest struct {
	Format       string `form:"format,default=xlsx" binding:"oneof=xlsx pdf"`
	IncludePhone *bool  `form:"includePhone"`
	PaidOnly     bool   `form:"paidOnly"`
	SeasonID     *int64 `form:"seasonId" binding:"omitempty,min=1"`
}

// WithPhone reports whether the phone column should be rendered; it defaults to true.
func (r ExportRequest) WithPhone() bool {
	return r.IncludePhone == nil || *r.IncludePhone
}

func SummarizePerson(id int64, gameName, name, phone string) PersonSummary {
	return PersonSummary{ID: id, GameName: gameName, Name: name, PhoneNumber: phone}
}
