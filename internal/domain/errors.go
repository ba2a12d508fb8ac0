package domain

import "errors"

var (
	// ErrInvalidTransition is returned when an action is not allowed from the booking's current status
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrInvalidCalendar is returned by BusinessCalendar.Validate
	ErrInvalidCalendar = errors.New("domain: invalid business calendar")

	// ErrInvalidStatus is returned when parsing an unknown booking status
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidPaymentStatus is returned when parsing an unknown payment status
	ErrInvalidPaymentStatus = errors.New("domain: invalid payment status")

	// ErrInvalidAction is returned when parsing an unknown lifecycle action
	ErrInvalidAction = errors.New("domain: invalid lifecycle action")

	// ErrCustomerMismatch is returned when a transition receives a customer not linked to the booking
	ErrCustomerMismatch = errors.New("domain: customer does not belong to booking")
)
