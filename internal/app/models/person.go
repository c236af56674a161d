package models

import "time"

// Person is a player or organizer. People are never hard-deleted.
type Person struct {
	ID           int64     `json:"id"`
	GameName     string    `json:"gameName"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phoneNumber"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasPassword reports whether a credential hash is stored.
func (p *Person) HasPassword() bool {
	return p.PasswordHash != ""
}
