package dto

import (
	"time"

	"github.com/yigit/seasonledger/internal/app/models"
)

// CreatePersonRequest represents person creation data
type CreatePersonRequest struct {
	GameName    string `json:"gameName" binding:"required,max=100"`
	Name        string `json:"name" binding:"max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"max=50"`
	Password    string `json:"password" binding:"max=100"`
	Role        string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive    *bool  `json:"isActive"`
}

// UpdatePersonRequest represents person update data. An empty password keeps the stored one.
type UpdatePersonRequest struct {
	GameName    string `json:"gameName" binding:"required,max=100"`
	Name        string `json:"name" binding:"max=100"`
	PhoneNumber string `json:"phoneNumber" binding:"max=50"`
	Password    string `json:"password" binding:"max=100"`
	Role        string `json:"role" binding:"omitempty,oneof=user admin"`
	IsActive    *bool  `json:"isActive"`
}

// PersonResponse never carries the credential itself.
type PersonResponse struct {
	ID          int64     `json:"id"`
	GameName    string    `json:"gameName"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PersonSummary is the person block embedded in reports.
type PersonSummary struct {
	ID          int64  `json:"id"`
	GameName    string `json:"gameName"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// PersonFilterRequest represents list parameters for people
type PersonFilterRequest struct {
	ListQuery
	PageSize int    `form:"pageSize,default=100" binding:"min=1"`
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
}

// PersonListResponse represents a page of people
type PersonListResponse struct {
	People []PersonResponse `json:"people"`
	PaginationInfo
}

// FromPerson converts a models.Person to a PersonResponse
func FromPerson(p *models.Person) PersonResponse {
	if p == nil {
		return PersonResponse{}
	}
	return PersonResponse{
		ID:          p.ID,
		GameName:    p.GameName,
		Name:        p.Name,
		PhoneNumber: p.PhoneNumber,
		Role:        string(p.Role),
		IsActive:    p.IsActive,
		HasPassword: p.HasPassword(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
