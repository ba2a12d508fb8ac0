package availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Generate returns candidate slots for date in ascending order.
// Candidates start at opening time and advance by the calendar's slot duration;
// a candidate is emitted while start+requested still ends by closing time.
// A requested duration longer than the business day yields an empty slice.
func Generate(date time.Time, calendar domain.BusinessCalendar, requested time.Duration) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	step := int(calendar.SlotDuration / time.Minute)
	length := int(requested / time.Minute)
	if step <= 0 || length <= 0 {
		return slots
	}

	open := calendar.OpeningTime.Minutes()
	closing := calendar.ClosingTime.Minutes()
	if open < 0 || closing < 0 {
		return slots
	}

	for start := open; start+length <= closing; start += step {
		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, domain.TimeSlot{
			Date:     date,
			Start:    startTime,
			Duration: requested,
		})
	}

	return slots
}
