package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mealdash/mealdash-backend/internal/pkg/apierr"
)

// storeErr maps a gorm failure onto the API error taxonomy. Constraint
// violations are the store rejecting invalid input; everything else,
// including timeouts and cancellation, is a storage failure.
func storeErr(code string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apierr.Validation("unknown_reference", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return apierr.Validation("invalid_input", err)
	default:
		return apierr.Storage(code, err)
	}
}
