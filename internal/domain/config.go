package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// BusinessSettings represents the single business settings record.
// Contact details are informational; the scheduling fields feed the BusinessCalendar.
type BusinessSettings struct {
	BusinessName string
	Phone        string
	WhatsApp     string
	Email        string
	Address      string

	OpeningTime            types.TimeString
	ClosingTime            types.TimeString
	ClosedDays             []time.Weekday
	SlotDurationMinutes    int
	MinAdvanceBookingHours int
	MaxAdvanceBookingDays  int

	UpdatedAt time.Time
}

// Calendar derives the scheduling rules from the settings
func (s *BusinessSettings) Calendar() BusinessCalendar {
	closed := make([]time.Weekday, len(s.ClosedDays))
	copy(closed, s.ClosedDays)

	return BusinessCalendar{
		OpeningTime:    s.OpeningTime,
		ClosingTime:    s.ClosingTime,
		ClosedWeekdays: closed,
		SlotDuration:   time.Duration(s.SlotDurationMinutes) * time.Minute,
		MinAdvance:     time.Duration(s.MinAdvanceBookingHours) * time.Hour,
		MaxAdvance:     time.Duration(s.MaxAdvanceBookingDays) * 24 * time.Hour,
	}
}

// IsOpenOn returns true if the business works on the given weekday
func (s *BusinessSettings) IsOpenOn(day time.Weekday) bool {
	for _, d := range s.ClosedDays {
		if d == day {
			return false
		}
	}
	return true
}
