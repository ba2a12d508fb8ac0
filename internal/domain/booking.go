package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Booking represents a customer appointment.
// Customer and service data are snapshotted at creation time and never follow later edits.
type Booking struct {
	ID        uuid.UUID
	Reference string

	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	// Soft reference to the service catalog; the snapshot below is authoritative for history
	ServiceID              *int64
	ServiceName            string
	ServiceCategory        string
	ServicePrice           decimal.Decimal
	ServiceDurationMinutes int

	Date      time.Time
	StartTime types.TimeString

	Status        BookingStatus
	PaymentStatus PaymentStatus

	Notes         *string
	InternalNotes *string
	Source        string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConfirmedAt *time.Time
	CompletedAt *time.Time
}

// Duration of the booked service
func (b *Booking) Duration() time.Duration {
	return time.Duration(b.ServiceDurationMinutes) * time.Minute
}

// Slot returns the interval the booking occupies
func (b *Booking) Slot() TimeSlot {
	return TimeSlot{
		Date:     b.Date,
		Start:    b.StartTime,
		Duration: b.Duration(),
	}
}

// IsOccupying returns true if the booking blocks its time range
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// BookingsFilter filter for booking listings; nil fields are not applied
type BookingsFilter struct {
	Date       *time.Time
	Status     *BookingStatus
	Phone      *string
	CustomerID *uuid.UUID
	// OccupyingOnly restricts the result to OccupyingStatuses
	OccupyingOnly bool
	Limit         uint64
	Offset        uint64
}
