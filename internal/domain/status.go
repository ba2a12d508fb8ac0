package domain

import "fmt"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

var statusLabels = map[BookingStatus]string{
	StatusPending:    "Pending Confirmation",
	StatusConfirmed:  "Confirmed",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
	StatusNoShow:     "No Show",
}

// AllStatuses in display order
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// OccupyingStatuses are the statuses whose bookings hold their time range
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// ParseBookingStatus converts a raw value into a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (s BookingStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the human readable name.
func (s BookingStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsOccupying reports whether a booking in this status blocks its slot.
func (s BookingStatus) IsOccupying() bool {
	for _, o := range OccupyingStatuses {
		if o == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// PaymentStatus is bookkeeping only; no payment processing happens here
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var paymentLabels = map[PaymentStatus]string{
	PaymentUnpaid:   "Unpaid",
	PaymentPartial:  "Partially Paid",
	PaymentPaid:     "Paid",
	PaymentRefunded: "Refunded",
}

// ParsePaymentStatus converts a raw value into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	ps := PaymentStatus(s)
	if !ps.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentStatus, s)
	}
	return ps, nil
}

func (p PaymentStatus) IsValid() bool {
	_, ok := paymentLabels[p]
	return ok
}

func (p PaymentStatus) Label() string {
	if l, ok := paymentLabels[p]; ok {
		return l
	}
	return string(p)
}
