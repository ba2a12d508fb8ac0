package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует строки
func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.ServiceName = strings.TrimSpace(req.ServiceName)
	req.ServiceCategory = strings.TrimSpace(req.ServiceCategory)

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.CustomerName) > domain.MaxNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}
	if len(req.CustomerPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: customer phone is too long", ErrInvalidInput)
	}

	if req.CustomerEmail != nil {
		email := strings.TrimSpace(*req.CustomerEmail)
		if email == "" {
			req.CustomerEmail = nil
		} else {
			if len(email) > domain.MaxEmailLength || !strings.Contains(email, "@") {
				return fmt.Errorf("%w: invalid customer email", ErrInvalidInput)
			}
			req.CustomerEmail = &email
		}
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.ServiceName == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if req.ServicePrice.IsNegative() {
		return fmt.Errorf("%w: service price must not be negative", ErrInvalidInput)
	}
	if req.ServiceDurationMinutes < domain.MinServiceDurationMinutes || req.ServiceDurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: service duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	if req.Source == "" {
		req.Source = domain.DefaultBookingSource
	}
	if !domain.IsValidSource(req.Source) {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidInput, req.Source)
	}

	return nil
}

// validateSlotPlacement проверяет, что слот попадает в рабочий день и рабочие часы
func validateSlotPlacement(calendar domain.BusinessCalendar, slot domain.TimeSlot) error {
	if calendar.IsClosed(slot.Date) {
		return fmt.Errorf("%w: %s", ErrSlotUnavailable, calendar.ClosedReason(slot.Date))
	}
	if !calendar.Fits(slot) {
		return fmt.Errorf("%w: %s-%d min is outside business hours %s-%s",
			ErrSlotUnavailable, slot.Start, int(slot.Duration.Minutes()), calendar.OpeningTime, calendar.ClosingTime)
	}
	return nil
}
