package models

import "time"

// SeasonReportRow is one person's aggregate over a season's events.
type SeasonReportRow struct {
	PersonID     int64
	GameName     string
	Name         string
	PhoneNumber  string
	EventsCount  int64
	TotalPayment Money
	HasPayment   bool
}

// SeasonReport is a page of grouped rows plus totals over the whole filtered set.
type SeasonReport struct {
	Season     *Season
	Rows       []SeasonReportRow
	TotalCount int64
	TotalSum   Money
}

// PersonReportRow is one event a person took part in.
type PersonReportRow struct {
	EventID      int64
	EventName    string
	DateTime     time.Time
	EventPayment Money
	Payment      Money
}

// PersonReport is a page of a person's events in a season plus totals.
type PersonReport struct {
	Person     *Person
	Season     *Season
	Rows       []PersonReportRow
	TotalCount int64
	TotalSum   Money
}
