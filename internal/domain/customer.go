package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is identified by phone number. TotalBookings and TotalSpent only grow,
// through completed bookings.
type Customer struct {
	ID            uuid.UUID
	Name          string
	Phone         string
	Email         *string
	Notes         *string
	TotalBookings int
	TotalSpent    decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Accrue records one completed booking worth amount.
func (c *Customer) Accrue(amount decimal.Decimal) {
	c.TotalBookings++
	c.TotalSpent = c.TotalSpent.Add(amount)
}
