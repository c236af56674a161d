// Package export renders report data as downloadable documents. Formatters
// receive the full row set and the totals computed by the report queries and
// never recompute them.
package export

import (
	"fmt"
	"time"

	"github.com/yigit/seasonledger/internal/app/models"
	"github.com/yigit/seasonledger/internal/app/models/dto/enums"
)

// Document is a rendered file ready to be streamed.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// SeasonSheet is the input of every season report formatter.
type SeasonSheet struct {
	Season       *models.Season
	Rows         []models.SeasonReportRow
	TotalSum     models.Money
	IncludePhone bool
	GeneratedAt  time.Time
}

// Title is shared by the PDF header and the XLSX title row.
func (s SeasonSheet) Title() string {
	return fmt.Sprintf("Season Report %d (%s)", s.Season.ID, s.Season.StartDate.Format(models.DateLayout))
}

func (s SeasonSheet) headers() []string {
	if s.IncludePhone {
		return []string{"#", "Name", "Game Name", "Phone", "Events", "Amount"}
	}
	return []string{"#", "Name", "Game Name", "Events", "Amount"}
}

func (s SeasonSheet) filename(format enums.ExportFormat) string {
	suffix := ""
	if !s.IncludePhone {
		suffix = "_no_phone"
	}
	return fmt.Sprintf("season_%d_report%s.%s", s.Season.ID, suffix, format)
}

// PlayerSheet is the input of the player report formatters.
type PlayerSheet struct {
	Person      *models.Person
	Season      *models.Season
	Rows        []models.PersonReportRow
	TotalCount  int64
	TotalSum    models.Money
	GeneratedAt time.Time
}

func (p PlayerSheet) Title() string {
	return fmt.Sprintf("Player Report: %s", p.Person.GameName)
}

func (p PlayerSheet) filename(format enums.ExportFormat) string {
	return fmt.Sprintf("player_%d_season_%d_report.%s", p.Person.ID, p.Season.ID, format)
}

var playerHeaders = []string{"#", "Event Name", "Date/Time", "Payment"}

const dateTimeLayout = "2006-01-02 15:04"

// Season renders a season report in the requested format.
func Season(sheet SeasonSheet, format enums.ExportFormat) (*Document, error) {
	var (
		content []byte
		err     error
	)
	switch format {
	case enums.ExportPDF:
		content, err = SeasonPDF(sheet)
	case enums.ExportXLSX:
		content, err = SeasonXLSX(sheet)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Filename: sheet.filename(format), ContentType: format.ContentType(), Content: content}, nil
}

// Player renders a player report in the requested format.
func Player(sheet PlayerSheet, format enums.ExportFormat) (*Document, error) {
	var (
		content []byte
		err     error
	)
	switch format {
	case enums.ExportPDF:
		content, err = PlayerPDF(sheet)
	case enums.ExportXLSX:
		content, err = PlayerXLSX(sheet)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Filename: sheet.filename(format), ContentType: format.ContentType(), Content: content}, nil
}

// SeasonChart renders the season totals as a PNG bar chart.
func SeasonChart(sheet SeasonSheet) (*Document, error) {
	content, err := SeasonChartPNG(sheet)
	if err != nil {
		return nil, err
	}
	return &Document{
		Filename:    fmt.Sprintf("season_%d_chart.png", sheet.Season.ID),
		ContentType: "image/png",
		Content:     content,
	}, nil
}

func displayName(name, gameName string) string {
	if name == "" {
		return gameName
	}
	return name
}
