package models

import "time"

// DateLayout is the wire format of a season start date.
const DateLayout = "2006-01-02"

// Season groups events. Only active seasons accept new or edited events.
type Season struct {
	ID        int64     `json:"id"`
	StartDate time.Time `json:"startDate"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	// EventsCount is filled by list queries only.
	EventsCount int64 `json:"eventsCount"`
}
