package domain

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// TimeSlot is a half-open interval [Start, Start+Duration) on a date
type TimeSlot struct {
	Date     time.Time
	Start    types.TimeString
	Duration time.Duration
}

// StartMinutes returns minutes since midnight
func (s TimeSlot) StartMinutes() int {
	return s.Start.Minutes()
}

// EndMinutes returns the exclusive end in minutes since midnight
func (s TimeSlot) EndMinutes() int {
	return s.Start.Minutes() + int(s.Duration/time.Minute)
}

// StartAt combines the calendar date and start time as a wall-clock instant in loc
func (s TimeSlot) StartAt(loc *time.Location) time.Time {
	y, m, d := s.Date.Date()
	mins := s.StartMinutes()
	return time.Date(y, m, d, mins/60, mins%60, 0, 0, loc)
}

// SameDate reports whether both slots fall on the same calendar date
func (s TimeSlot) SameDate(other TimeSlot) bool {
	y1, m1, d1 := s.Date.Date()
	y2, m2, d2 := other.Date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Overlaps is true iff both slots are on the same date and the intervals intersect.
// Touching intervals (one ends exactly when the other starts) do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	if !s.SameDate(other) {
		return false
	}
	return s.StartMinutes() < other.EndMinutes() && other.StartMinutes() < s.EndMinutes()
}

// SlotAvailability is one candidate slot with its free flag
type SlotAvailability struct {
	Slot TimeSlot
	Free bool
}

// AvailabilityResult is the answer for a single date
type AvailabilityResult struct {
	Date      time.Time
	Available bool
	Reason    string
	Slots     []SlotAvailability
}

// FreeCount returns the number of free slots
func (r *AvailabilityResult) FreeCount() int {
	n := 0
	for _, s := range r.Slots {
		if s.Free {
			n++
		}
	}
	return n
}
