package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// BusinessCalendar holds the rules availability is computed from.
// It is loaded once at start-up and passed around by value.
type BusinessCalendar struct {
	OpeningTime    types.TimeString
	ClosingTime    types.TimeString
	ClosedWeekdays []time.Weekday
	SlotDuration   time.Duration
	MinAdvance     time.Duration
	MaxAdvance     time.Duration
}

// DefaultCalendar mirrors the default business settings.
func DefaultCalendar() BusinessCalendar {
	return BusinessCalendar{
		OpeningTime:    DefaultOpeningTime,
		ClosingTime:    DefaultClosingTime,
		ClosedWeekdays: []time.Weekday{time.Sunday},
		SlotDuration:   DefaultSlotDurationMinutes * time.Minute,
		MinAdvance:     DefaultMinAdvanceBookingHours * time.Hour,
		MaxAdvance:     DefaultMaxAdvanceBookingDays * 24 * time.Hour,
	}
}

// Validate checks opening < closing, a positive slot duration and min <= max advance.
func (c BusinessCalendar) Validate() error {
	if err := c.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("%w: opening time: %v", ErrInvalidCalendar, err)
	}
	if err := c.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("%w: closing time: %v", ErrInvalidCalendar, err)
	}
	if !c.OpeningTime.IsBefore(c.ClosingTime) {
		return fmt.Errorf("%w: opening time %s must be before closing time %s", ErrInvalidCalendar, c.OpeningTime, c.ClosingTime)
	}
	if c.SlotDuration < time.Minute {
		return fmt.Errorf("%w: slot duration must be at least one minute", ErrInvalidCalendar)
	}
	if c.MinAdvance < 0 || c.MaxAdvance < 0 {
		return fmt.Errorf("%w: advance window must not be negative", ErrInvalidCalendar)
	}
	if c.MinAdvance > c.MaxAdvance {
		return fmt.Errorf("%w: min advance %s exceeds max advance %s", ErrInvalidCalendar, c.MinAdvance, c.MaxAdvance)
	}
	return nil
}

// IsClosed reports whether the business is closed on date's weekday.
func (c BusinessCalendar) IsClosed(date time.Time) bool {
	wd := date.Weekday()
	for _, closed := range c.ClosedWeekdays {
		if closed == wd {
			return true
		}
	}
	return false
}

// ClosedReason is the message shown for a closed day, e.g. "Closed on Sunday".
func (c BusinessCalendar) ClosedReason(date time.Time) string {
	return "Closed on " + date.Weekday().String()
}

// AdvanceWindow returns the earliest and latest bookable start instants relative to now.
func (c BusinessCalendar) AdvanceWindow(now time.Time) (earliest, latest time.Time) {
	return now.Add(c.MinAdvance), now.Add(c.MaxAdvance)
}

// WithinAdvanceWindow reports whether start lies in [now+MinAdvance, now+MaxAdvance].
func (c BusinessCalendar) WithinAdvanceWindow(start, now time.Time) bool {
	earliest, latest := c.AdvanceWindow(now)
	return !start.Before(earliest) && !start.After(latest)
}

// Fits reports whether slot lies within business hours.
func (c BusinessCalendar) Fits(slot TimeSlot) bool {
	start := slot.StartMinutes()
	return start >= c.OpeningTime.Minutes() && slot.EndMinutes() <= c.ClosingTime.Minutes()
}

// ParseWeekdays parses a list like "Sunday, Monday" (case-insensitive, full or three-letter names).
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	result := make([]time.Weekday, 0, len(names))
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		wd, ok := weekdayByName[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidCalendar, raw)
		}
		result = append(result, wd)
	}
	return result, nil
}

// SplitWeekdays splits the comma separated storage form of closed days.
func SplitWeekdays(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// JoinWeekdays is the inverse of SplitWeekdays.
func JoinWeekdays(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ",")
}

var weekdayByName = func() map[string]time.Weekday {
	m := make(map[string]time.Weekday, 14)
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		m[full] = d
		m[full[:3]] = d
	}
	return m
}()
