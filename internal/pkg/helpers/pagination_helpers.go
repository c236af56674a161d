package helpers

import (
	"fmt"
	"math"

	"github.com/yigit/seasonledger/internal/app/models/dto"
	"github.com/yigit/seasonledger/internal/pkg/apperrors"
)

const (
	DefaultPage = 1
	MaxPageSize = 1000
	// MaxPage keeps (page-1)*MaxPageSize well inside a BIGINT offset.
	MaxPage = math.MaxInt32
)

// ValidatePage rejects page outside [1, MaxPage] and pageSize < 1 before any arithmetic is done.
func ValidatePage(page, size int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be at least 1", apperrors.ErrValidationFailed)
	}
	if page > MaxPage {
		return fmt.Errorf("%w: page must be at most %d", apperrors.ErrValidationFailed, MaxPage)
	}
	if size < 1 {
		return fmt.Errorf("%w: pageSize must be at least 1", apperrors.ErrValidationFailed)
	}
	return nil
}

// ClampPageSize caps size at MaxPageSize.
func ClampPageSize(size int) int {
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
// Callers validate page and size first.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	limit = uint64(ClampPageSize(size))
	offset = uint64(page-1) * limit
	return offset, limit
}

// TotalPages is ceil(total/size), and 0 for an empty result.
func TotalPages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

// NewPaginationInfo builds the envelope fields. The requested page is echoed even past the end.
func NewPaginationInfo(totalCount int64, page, size int) dto.PaginationInfo {
	size = ClampPageSize(size)
	return dto.PaginationInfo{
		Page:       page,
		PageSize:   size,
		TotalCount: totalCount,
		TotalPages: TotalPages(totalCount, size),
	}
}
