package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newBooking(status domain.BookingStatus, customer *domain.Customer) domain.Booking {
	b := domain.Booking{
		ID:                     uuid.New(),
		Reference:              "TBE-1A2B3C",
		CustomerName:           "Amara",
		CustomerPhone:          "+255700000001",
		ServiceName:            "Gel Manicure",
		ServicePrice:           decimal.NewFromInt(150000),
		ServiceDurationMinutes: 60,
		Date:                   time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime:              "12:00",
		Status:                 status,
		PaymentStatus:          domain.PaymentUnpaid,
	}
	if customer != nil {
		id := customer.ID
		b.CustomerID = &id
	}
	return b
}

func newCustomer() *domain.Customer {
	return &domain.Customer{
		ID:            uuid.New(),
		Name:          "Amara",
		Phone:         "+255700000001",
		TotalBookings: 2,
		TotalSpent:    decimal.NewFromInt(80000),
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[domain.Action][]domain.BookingStatus{
		domain.ActionConfirm:  {domain.StatusPending},
		domain.ActionStart:    {domain.StatusConfirmed},
		domain.ActionComplete: {domain.StatusConfirmed, domain.StatusInProgress},
		domain.ActionCancel:   {domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress},
		domain.ActionNoShow:   {domain.StatusPending, domain.StatusConfirmed},
	}

	for action, from := range allowed {
		for _, status := range domain.AllStatuses {
			want := false
			for _, s := range from {
				if s == status {
					want = true
				}
			}
			assert.Equal(t, want, domain.CanTransition(status, action), "%s from %s", action, status)
		}
	}

	assert.False(t, domain.CanTransition(domain.StatusPending, domain.Action("archive")))
}

func TestApplyTransition(t *testing.T) {
	t.Run("confirm sets confirmed_at", func(t *testing.T) {
		b := newBooking(domain.StatusPending, nil)

		res, err := domain.ApplyTransition(b, nil, domain.ActionConfirm, now)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusConfirmed, res.Booking.Status)
		require.NotNil(t, res.Booking.ConfirmedAt)
		assert.Equal(t, now, *res.Booking.ConfirmedAt)
		assert.Equal(t, domain.StatusPending, res.From)
		assert.Equal(t, domain.StatusConfirmed, res.To)
		assert.False(t, res.Accrued)
		assert.Equal(t, domain.StatusPending, b.Status, "input must not change")
	})

	t.Run("complete accrues price once", func(t *testing.T) {
		customer := newCustomer()
		b := newBooking(domain.StatusConfirmed, customer)

		res, err := domain.ApplyTransition(b, customer, domain.ActionComplete, now)
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCompleted, res.Booking.Status)
		require.NotNil(t, res.Booking.CompletedAt)
		require.NotNil(t, res.Customer)
		assert.True(t, res.Accrued)
		assert.Equal(t, 3, res.Customer.TotalBookings)
		assert.True(t, decimal.NewFromInt(230000).Equal(res.Customer.TotalSpent))

		assert.Equal(t, 2, customer.TotalBookings, "input customer must not change")

		_, err = domain.ApplyTransition(res.Booking, res.Customer, domain.ActionComplete, now)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("complete accrues regardless of payment status", func(t *testing.T) {
		customer := newCustomer()
		b := newBooking(domain.StatusInProgress, customer)
		b.PaymentStatus = domain.PaymentRefunded

		res, err := domain.ApplyTransition(b, customer, domain.ActionComplete, now)
		require.NoError(t, err)
		assert.True(t, res.Accrued)
	})

	t.Run("complete without customer", func(t *testing.T) {
		b := newBooking(domain.StatusConfirmed, nil)

		res, err := domain.ApplyTransition(b, nil, domain.ActionComplete, now)
		require.NoError(t, err)
		assert.False(t, res.Accrued)
		assert.Nil(t, res.Customer)
	})

	t.Run("complete from pending is rejected", func(t *testing.T) {
		customer := newCustomer()
		b := newBooking(domain.StatusPending, customer)

		res, err := domain.ApplyTransition(b, customer, domain.ActionComplete, now)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), "Only confirmed or in-progress bookings can be completed")
		assert.Equal(t, 2, customer.TotalBookings)
	})

	t.Run("cancel twice", func(t *testing.T) {
		b := newBooking(domain.StatusConfirmed, nil)

		res, err := domain.ApplyTransition(b, nil, domain.ActionCancel, now)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, res.Booking.Status)

		_, err = domain.ApplyTransition(res.Booking, nil, domain.ActionCancel, now)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Contains(t, err.Error(), "Cannot cancel completed or already cancelled bookings")
	})

	t.Run("customer mismatch", func(t *testing.T) {
		b := newBooking(domain.StatusConfirmed, newCustomer())

		_, err := domain.ApplyTransition(b, newCustomer(), domain.ActionComplete, now)
		assert.ErrorIs(t, err, domain.ErrCustomerMismatch)
	})
}

func TestParseAction(t *testing.T) {
	a, err := domain.ParseAction("no_show")
	require.NoError(t, err)
	assert.Equal(t, domain.ActionNoShow, a)

	target, ok := a.Target()
	assert.True(t, ok)
	assert.Equal(t, domain.StatusNoShow, target)

	_, err = domain.ParseAction("delete")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, domain.StatusPending.IsOccupying())
	assert.True(t, domain.StatusInProgress.IsOccupying())
	assert.False(t, domain.StatusCancelled.IsOccupying())
	assert.False(t, domain.StatusNoShow.IsOccupying())
	assert.True(t, domain.StatusCompleted.IsTerminal())
	assert.Equal(t, "Pending Confirmation", domain.StatusPending.Label())

	_, err := domain.ParseBookingStatus("cancelled_by_user")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	p, err := domain.ParsePaymentStatus("partial")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPartial, p)
}
