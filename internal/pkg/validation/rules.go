package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yigit/seasonledger/internal/pkg/apperrors"
)

// StringValidation checks a single text field. Lengths are counted in characters.
type StringValidation struct {
	Field    string
	Value    string
	MaxLen   int
	Required bool
}

// NewStringValidation creates a required string validation for field
func NewStringValidation(field, value string) *StringValidation {
	return &StringValidation{
		Field:    field,
		Value:    value,
		Required: true,
	}
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate returns an ErrValidationFailed-wrapped error naming the field, or nil.
func (v *StringValidation) Validate() error {
	if v.Required && strings.TrimSpace(v.Value) == "" {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s is required", v.Field))
	}
	if v.MaxLen > 0 && utf8.RuneCountInString(v.Value) > v.MaxLen {
		return apperrors.NewValidationError(v.Field, fmt.Sprintf("%s must be at most %d characters", v.Field, v.MaxLen))
	}
	return nil
}

// NonNegative rejects negative amounts.
func NonNegative(field string, cents int64) error {
	if cents < 0 {
		return apperrors.NewValidationError(field, fmt.Sprintf("%s must not be negative", field))
	}
	return nil
}

// All returns the first failing validation.
func All(checks ...*StringValidation) error {
	for _, c := range checks {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
