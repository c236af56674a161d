package dto

import "time"

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a successful envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// IDResponse is returned by create endpoints.
type IDResponse struct {
	ID int64 `json:"id"`
}

// PaginationInfo is embedded into every list response.
type PaginationInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

// ListQuery holds the paging and sorting query parameters shared by list endpoints.
// Defaults for PageSize differ per endpoint and are applied by the embedding filter.
type ListQuery struct {
	Page          int    `form:"page,default=1" binding:"min=1"`
	SortBy        string `form:"sortBy"`
	SortDirection string `form:"sortDirection"`
}
