package get_availability

import (
	"fmt"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// validateRequest валидирует входные данные
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, types.MinutesPerDay)
	}

	return nil
}
