package availability

import (
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// OccupiedSlots keeps only bookings that block their time range and returns their intervals.
func OccupiedSlots(bookings []*domain.Booking) []domain.TimeSlot {
	occupied := make([]domain.TimeSlot, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsOccupying() {
			continue
		}
		occupied = append(occupied, b.Slot())
	}
	return occupied
}

// Overlaps reports whether candidate intersects any occupied interval.
func Overlaps(candidate domain.TimeSlot, occupied []domain.TimeSlot) bool {
	for _, o := range occupied {
		if candidate.Overlaps(o) {
			return true
		}
	}
	return false
}

// Conflicts returns, for each candidate start time, whether it intersects an occupied interval.
func Conflicts(candidates []domain.TimeSlot, occupied []domain.TimeSlot) map[types.TimeString]bool {
	result := make(map[types.TimeString]bool, len(candidates))
	for _, c := range candidates {
		result[c.Start] = Overlaps(c, occupied)
	}
	return result
}
