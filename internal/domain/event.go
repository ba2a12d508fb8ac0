package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventType is the routing key of a booking event
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingStarted   EventType = "booking.started"
	EventBookingCompleted EventType = "booking.completed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventBookingNoShow    EventType = "booking.no_show"
)

var actionEvents = map[Action]EventType{
	ActionConfirm:  EventBookingConfirmed,
	ActionStart:    EventBookingStarted,
	ActionComplete: EventBookingCompleted,
	ActionCancel:   EventBookingCancelled,
	ActionNoShow:   EventBookingNoShow,
}

// EventForAction maps a lifecycle action to its event type
func EventForAction(a Action) EventType {
	return actionEvents[a]
}

// BookingEvent is published after a booking was created or changed status
type BookingEvent struct {
	Type          EventType `json:"type"`
	BookingID     uuid.UUID `json:"bookingId"`
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	ServiceName   string    `json:"serviceName"`
	ServicePrice  string    `json:"servicePrice"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Notes         string    `json:"notes,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewBookingEvent builds an event snapshot of b
func NewBookingEvent(t EventType, b *Booking, at time.Time) BookingEvent {
	ev := BookingEvent{
		Type:          t,
		BookingID:     b.ID,
		Reference:     b.Reference,
		Status:        string(b.Status),
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		ServiceName:   b.ServiceName,
		ServicePrice:  b.ServicePrice.String(),
		Date:          b.Date.Format(DateFormat),
		Time:          b.StartTime.String(),
		OccurredAt:    at,
	}
	if b.Notes != nil {
		ev.Notes = *b.Notes
	}
	return ev
}
