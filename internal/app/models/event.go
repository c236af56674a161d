package models

import "time"

// Event is a single game session within a season. Payment is the base fee.
type Event struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SeasonID  int64     `json:"seasonId"`
	Payment   Money     `json:"payment"`
	DateTime  time.Time `json:"dateTime"`
	CreatedAt time.Time `json:"createdAt"`

	ParticipantCount int64 `json:"participantCount"`
}

// EventParticipant links a person to an event with the amount they paid.
type EventParticipant struct {
	EventID  int64     `json:"eventId"`
	PersonID int64     `json:"personId"`
	Payment  Money     `json:"payment"`
	AddedAt  time.Time `json:"addedAt"`
}

// ParticipantDetail is a participant row joined with the person.
type ParticipantDetail struct {
	EventID     int64
	PersonID    int64
	GameName    string
	Name        string
	PhoneNumber string
	IsActive    bool
	Payment     Money
	AddedAt     time.Time
}
