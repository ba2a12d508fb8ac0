package bookings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/ptr"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if b, ok := args.Get(0).([]*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if b, ok := args.Get(0).(*domain.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func sampleBooking() *domain.Booking {
	confirmed := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                     uuid.New(),
		Reference:              "TBE-4F9A2C",
		CustomerName:           "Neema",
		CustomerPhone:          "+255700000002",
		ServiceName:            "Braids",
		ServicePrice:           decimal.NewFromInt(150000),
		ServiceDurationMinutes: 180,
		Date:                   time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:              "14:00",
		Status:                 domain.StatusConfirmed,
		PaymentStatus:          domain.PaymentUnpaid,
		Source:                 domain.SourceWebsite,
		ConfirmedAt:            &confirmed,
	}
}

func TestService_GetByID(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := bookings.NewService(repo, logger.NewNop())
	b := sampleBooking()
	missing := uuid.New()

	repo.On("GetByID", mock.Anything, b.ID).Return(b, nil).Once()
	repo.On("GetByID", mock.Anything, missing).Return(nil, bookingRepo.ErrBookingNotFound).Once()

	resp, err := svc.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "150000.00", resp.ServicePrice)
	assert.Equal(t, "2025-03-11", resp.BookingDate)
	assert.Equal(t, "2:00 PM", resp.TimeLabel)
	assert.Equal(t, "Confirmed", resp.StatusLabel)
	require.NotNil(t, resp.ConfirmedAt)
	assert.Equal(t, "2025-03-10T08:30:00Z", *resp.ConfirmedAt)
	assert.Nil(t, resp.CompletedAt)

	_, err = svc.GetByID(context.Background(), missing)
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)

	repo.AssertExpectations(t)
}

func TestService_GetByReference(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := bookings.NewService(repo, logger.NewNop())

	repo.On("GetByReference", mock.Anything, "TBE-4F9A2C").Return(sampleBooking(), nil).Once()

	resp, err := svc.GetByReference(context.Background(), " tbe-4f9a2c ")
	require.NoError(t, err)
	assert.Equal(t, "TBE-4F9A2C", resp.Reference)

	_, err = svc.GetByReference(context.Background(), "not-a-code")
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	repo.AssertExpectations(t)
}

func TestService_List(t *testing.T) {
	t.Run("filter is parsed", func(t *testing.T) {
		repo := &mockBookingRepo{}
		svc := bookings.NewService(repo, logger.NewNop())

		repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
			return f.Date != nil && f.Date.Format(domain.DateFormat) == "2025-03-11" &&
				f.Status != nil && *f.Status == domain.StatusPending &&
				f.Phone != nil && *f.Phone == "+255700000002" &&
				f.Limit == 50
		})).Return([]*domain.Booking{sampleBooking()}, nil).Once()

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
			Date:   ptr.Ptr("2025-03-11"),
			Status: ptr.Ptr("pending"),
			Phone:  ptr.Ptr(" +255700000002 "),
			Limit:  50,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
		repo.AssertExpectations(t)
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		repo := &mockBookingRepo{}
		svc := bookings.NewService(repo, logger.NewNop())
		repo.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()

		resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
		require.NoError(t, err)
		assert.NotNil(t, resp.Bookings)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := bookings.NewService(&mockBookingRepo{}, logger.NewNop())

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("archived")})
		assert.ErrorIs(t, err, bookings.ErrInvalidInput)
	})

	t.Run("invalid date", func(t *testing.T) {
		svc := bookings.NewService(&mockBookingRepo{}, logger.NewNop())

		_, err := svc.List(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr("11/03/2025")})
		assert.ErrorIs(t, err, bookings.ErrInvalidInput)
	})
}

func TestService_GetCustomerBookings(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := bookings.NewService(repo, logger.NewNop())
	customerID := uuid.New()

	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.CustomerID != nil && *f.CustomerID == customerID
	})).Return(nil, errors.New("boom")).Once()

	_, err := svc.GetCustomerBookings(context.Background(), customerID)
	assert.ErrorIs(t, err, bookings.ErrInternal)
	repo.AssertExpectations(t)
}

func TestService_UpdatePaymentStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := bookings.NewService(repo, logger.NewNop())
	b := sampleBooking()
	paid := *b
	paid.PaymentStatus = domain.PaymentPaid

	repo.On("UpdatePaymentStatus", mock.Anything, b.ID, domain.PaymentPaid).Return(&paid, nil).Once()

	resp, err := svc.UpdatePaymentStatus(context.Background(), b.ID, &models.UpdatePaymentRequest{PaymentStatus: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.UpdatePaymentStatus(context.Background(), b.ID, &models.UpdatePaymentRequest{PaymentStatus: "free"})
	assert.ErrorIs(t, err, bookings.ErrInvalidInput)

	repo.AssertExpectations(t)
}
