package availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// Compute answers "which slots on date are free for a service of the requested length".
// Closed days short-circuit without generating candidates. bookings may contain any
// status; only occupying ones are considered. The advance window is not applied here.
func Compute(
	date time.Time,
	calendar domain.BusinessCalendar,
	requested time.Duration,
	bookings []*domain.Booking,
) domain.AvailabilityResult {
	if calendar.IsClosed(date) {
		return domain.AvailabilityResult{
			Date:      date,
			Available: false,
			Reason:    calendar.ClosedReason(date),
			Slots:     []domain.SlotAvailability{},
		}
	}

	candidates := Generate(date, calendar, requested)
	occupied := OccupiedSlots(bookings)
	conflicts := Conflicts(candidates, occupied)

	slots := make([]domain.SlotAvailability, len(candidates))
	for i, c := range candidates {
		slots[i] = domain.SlotAvailability{
			Slot: c,
			Free: !conflicts[c.Start],
		}
	}

	return domain.AvailabilityResult{
		Date:      date,
		Available: true,
		Slots:     slots,
	}
}
