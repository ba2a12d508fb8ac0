package transition_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// validateRequest проверяет идентификатор и разбирает действие
func validateRequest(req *Request) (domain.Action, error) {
	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	action, err := domain.ParseAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return action, nil
}
