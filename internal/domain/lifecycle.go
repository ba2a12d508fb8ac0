package domain

import (
	"fmt"
	"time"
)

// Action is a lifecycle operation requested on a booking
type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no_show"
)

type transitionRule struct {
	from    []BookingStatus
	to      BookingStatus
	message string
}

// transitions lists every allowed move; anything else is ErrInvalidTransition
var transitions = map[Action]transitionRule{
	ActionConfirm: {
		from:    []BookingStatus{StatusPending},
		to:      StatusConfirmed,
		message: "Only pending bookings can be confirmed",
	},
	ActionStart: {
		from:    []BookingStatus{StatusConfirmed},
		to:      StatusInProgress,
		message: "Only confirmed bookings can be started",
	},
	ActionComplete: {
		from:    []BookingStatus{StatusConfirmed, StatusInProgress},
		to:      StatusCompleted,
		message: "Only confirmed or in-progress bookings can be completed",
	},
	ActionCancel: {
		from:    []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress},
		to:      StatusCancelled,
		message: "Cannot cancel completed or already cancelled bookings",
	},
	ActionNoShow: {
		from:    []BookingStatus{StatusPending, StatusConfirmed},
		to:      StatusNoShow,
		message: "Only pending or confirmed bookings can be marked as no-show",
	},
}

// ParseAction converts a raw value into an Action.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if _, ok := transitions[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
	return a, nil
}

// Target returns the status the action leads to.
func (a Action) Target() (BookingStatus, bool) {
	rule, ok := transitions[a]
	return rule.to, ok
}

// CanTransition reports whether action is allowed from status.
func CanTransition(status BookingStatus, action Action) bool {
	rule, ok := transitions[action]
	if !ok {
		return false
	}
	for _, s := range rule.from {
		if s == status {
			return true
		}
	}
	return false
}

// TransitionResult holds the updated copies produced by ApplyTransition.
type TransitionResult struct {
	Booking  Booking
	Customer *Customer
	From     BookingStatus
	To       BookingStatus
	// Accrued is set when the customer's totals were incremented
	Accrued bool
}

// ApplyTransition validates action against booking's status and returns updated copies.
// The inputs are never modified, so a rejected transition leaves no trace.
// Completing a booking accrues its price to the linked customer, regardless of payment status.
func ApplyTransition(booking Booking, customer *Customer, action Action, now time.Time) (*TransitionResult, error) {
	rule, ok := transitions[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	if !CanTransition(booking.Status, action) {
		return nil, fmt.Errorf("%w: %s (status %s)", ErrInvalidTransition, rule.message, booking.Status)
	}
	if customer != nil && (booking.CustomerID == nil || *booking.CustomerID != customer.ID) {
		return nil, ErrCustomerMismatch
	}

	result := &TransitionResult{
		Booking: booking,
		From:    booking.Status,
		To:      rule.to,
	}
	result.Booking.Status = rule.to
	result.Booking.UpdatedAt = now

	switch action {
	case ActionConfirm:
		confirmedAt := now
		result.Booking.ConfirmedAt = &confirmedAt

	case ActionComplete:
		completedAt := now
		result.Booking.CompletedAt = &completedAt

		if customer != nil {
			updated := *customer
			updated.Accrue(booking.ServicePrice)
			updated.UpdatedAt = now
			result.Customer = &updated
			result.Accrued = true
		}
	}

	return result, nil
}

// TransitionMessage returns the rejection message for action.
func TransitionMessage(action Action) string {
	return transitions[action].message
}
