package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/customer"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/ptr"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

// Понедельник 10:00; вторник 2025-03-11 в окне бронирования, воскресенье 2025-03-16 - выходной
var (
	testNow     = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	testTuesday = time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	bookings  *mockBookingRepo
	customers *mockCustomerRepo
	publisher *mockPublisher
	metrics   *mockMetrics
	tx        *passthroughTx
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		bookings:  &mockBookingRepo{},
		customers: &mockCustomerRepo{},
		publisher: &mockPublisher{},
		metrics:   &mockMetrics{},
		tx:        &passthroughTx{},
	}
	f.uc = NewUseCase(f.bookings, f.customers, f.tx, f.publisher, f.metrics,
		domain.DefaultCalendar(), "", logger.NewNop())
	f.uc.timeProvider = fixedTime{now: testNow}
	f.uc.newReference = func(prefix string) string { return prefix + "A1B2C3" }

	t.Cleanup(func() {
		f.bookings.AssertExpectations(t)
		f.customers.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
		f.metrics.AssertExpectations(t)
	})
	return f
}

func validRequest() *Request {
	return &Request{
		CustomerName:           "  Amina Yusuf ",
		CustomerPhone:          "+255700000001",
		ServiceName:            "Gel Manicure",
		ServiceCategory:        "Nails",
		ServicePrice:           decimal.NewFromInt(35000),
		ServiceDurationMinutes: 60,
		Date:                   testTuesday,
		StartTime:              "14:00",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)
	customerID := uuid.New()

	f.bookings.On("List", mock.Anything, mock.MatchedBy(func(filter domain.BookingsFilter) bool {
		return filter.OccupyingOnly && filter.Date != nil && filter.Date.Equal(testTuesday)
	})).Return([]*domain.Booking{
		{Date: testTuesday, StartTime: "13:00", ServiceDurationMinutes: 60, Status: domain.StatusConfirmed},
		{Date: testTuesday, StartTime: "15:00", ServiceDurationMinutes: 60, Status: domain.StatusPending},
	}, nil).Once()
	f.customers.On("GetOrCreateByPhone", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Phone == "+255700000001" && c.Name == "Amina Yusuf"
	})).Return(&domain.Customer{ID: customerID, Phone: "+255700000001"}, true, nil).Once()
	f.bookings.On("ExistsByReference", mock.Anything, "TBE-A1B2C3").Return(false, nil).Once()
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(func(b *domain.Booking) *domain.Booking {
			saved := *b
			saved.ID = uuid.New()
			return &saved
		}, nil).Once()
	f.metrics.On("IncBookingCreated", domain.SourceWebsite).Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.BookingEvent) bool {
		return e.Type == domain.EventBookingCreated && e.Reference == "TBE-A1B2C3" && e.Time == "14:00"
	})).Once()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Booking)

	b := resp.Booking
	assert.True(t, resp.CustomerCreated)
	assert.Equal(t, "TBE-A1B2C3", b.Reference)
	assert.Equal(t, domain.StatusPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, "Amina Yusuf", b.CustomerName)
	assert.Equal(t, ptr.Ptr(customerID), b.CustomerID)
	assert.Equal(t, domain.SourceWebsite, b.Source)
	assert.True(t, b.ServicePrice.Equal(decimal.NewFromInt(35000)))
}

func TestUseCase_Execute_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "missing name", mutate: func(r *Request) { r.CustomerName = " " }},
		{name: "missing phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "bad email", mutate: func(r *Request) { r.CustomerEmail = ptr.Ptr("nope") }},
		{name: "missing service", mutate: func(r *Request) { r.ServiceName = "" }},
		{name: "negative price", mutate: func(r *Request) { r.ServicePrice = decimal.NewFromInt(-1) }},
		{name: "duration too short", mutate: func(r *Request) { r.ServiceDurationMinutes = 1 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "malformed time", mutate: func(r *Request) { r.StartTime = "25:00" }},
		{name: "unknown source", mutate: func(r *Request) { r.Source = "fax" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUseCase_Execute_AdvanceWindow(t *testing.T) {
	t.Run("too soon", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Date = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		req.StartTime = "15:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideAdvanceWindow)
		assert.Contains(t, err.Error(), "at least 24 hours and at most 30 days")
	})

	t.Run("too far", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Date = testNow.AddDate(0, 0, 45)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideAdvanceWindow)
	})

	t.Run("checked before closed day", func(t *testing.T) {
		f := newFixture(t)
		f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
		req := validRequest()
		req.Date = time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
		req.StartTime = "09:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideAdvanceWindow)
		assert.NotErrorIs(t, err, ErrSlotUnavailable)
	})
}

func TestUseCase_Execute_SlotPlacement(t *testing.T) {
	t.Run("closed day", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Date = time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		assert.Contains(t, err.Error(), "Closed on Sunday")
	})

	t.Run("ends after closing", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.StartTime = "18:30"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})
}

func TestUseCase_Execute_Conflicts(t *testing.T) {
	t.Run("overlapping occupying booking", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{
			{Date: testTuesday, StartTime: "13:30", ServiceDurationMinutes: 60, Status: domain.StatusInProgress},
		}, nil).Once()
		f.metrics.On("IncSlotConflict").Once()

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		f.customers.AssertNotCalled(t, "GetOrCreateByPhone", mock.Anything, mock.Anything)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index rejects insert", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
		f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
			Return(&domain.Customer{ID: uuid.New()}, false, nil).Once()
		f.bookings.On("ExistsByReference", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrSlotTaken).Once()
		f.metrics.On("IncSlotConflict").Once()

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("serialization failure", func(t *testing.T) {
		f := newFixture(t)
		f.tx.err = fmt.Errorf("%w: commit: pq: could not serialize access", txmanager.ErrSerializationFailure)
		f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
		f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
			Return(&domain.Customer{ID: uuid.New()}, false, nil).Once()
		f.bookings.On("ExistsByReference", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{}, nil).Once()
		f.metrics.On("IncSlotConflict").Once()

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("touching bookings do not conflict", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{
			{Date: testTuesday, StartTime: "13:00", ServiceDurationMinutes: 60, Status: domain.StatusConfirmed},
			{Date: testTuesday, StartTime: "14:00", ServiceDurationMinutes: 60, Status: domain.StatusCancelled},
		}, nil).Once()
		f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
			Return(&domain.Customer{ID: uuid.New()}, false, nil).Once()
		f.bookings.On("ExistsByReference", mock.Anything, mock.Anything).Return(false, nil).Once()
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{Source: domain.SourceWebsite}, nil).Once()
		f.metrics.On("IncBookingCreated", domain.SourceWebsite).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.False(t, resp.CustomerCreated)
	})
}

// 40001 внутри транзакции: при SERIALIZABLE Postgres так сообщает о гонке за слот
func TestUseCase_Execute_SerializationFailureInsideTx(t *testing.T) {
	serializationErr := &pq.Error{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}

	cases := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "on locking read",
			setup: func(f *fixture) {
				f.bookings.On("List", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: List - execute select: %w", bookingRepo.ErrExecQuery, serializationErr)).Once()
			},
		},
		{
			name: "on customer upsert",
			setup: func(f *fixture) {
				f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
				f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
					Return(nil, false, fmt.Errorf("%w: GetOrCreateByPhone - execute upsert: %w", customerRepo.ErrExecQuery, serializationErr)).Once()
			},
		},
		{
			name: "on insert",
			setup: func(f *fixture) {
				f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
				f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
					Return(&domain.Customer{ID: uuid.New()}, false, nil).Once()
				f.bookings.On("ExistsByReference", mock.Anything, mock.Anything).Return(false, nil).Once()
				f.bookings.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, serializationErr)).Once()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			beginner := &fakeBeginner{}
			f.uc.txManager = txmanager.NewTransactionManager(beginner)
			tc.setup(f)
			f.metrics.On("IncSlotConflict").Once()

			_, err := f.uc.Execute(context.Background(), validRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSlotUnavailable)
			assert.NotErrorIs(t, err, ErrInternal)

			require.NotNil(t, beginner.tx)
			assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
			assert.True(t, beginner.tx.rolledBack)
			assert.False(t, beginner.tx.committed)
			f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_Reference(t *testing.T) {
	t.Run("retries on collision", func(t *testing.T) {
		f := newFixture(t)
		codes := []string{"TBE-000001", "TBE-000002"}
		f.uc.newReference = func(string) string {
			c := codes[0]
			codes = codes[1:]
			return c
		}

		f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
		f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
			Return(&domain.Customer{ID: uuid.New()}, false, nil).Once()
		f.bookings.On("ExistsByReference", mock.Anything, "TBE-000001").Return(true, nil).Once()
		f.bookings.On("ExistsByReference", mock.Anything, "TBE-000002").Return(false, nil).Once()
		f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
			return b.Reference == "TBE-000002"
		})).Return(&domain.Booking{Reference: "TBE-000002", Source: domain.SourceWebsite}, nil).Once()
		f.metrics.On("IncBookingCreated", domain.SourceWebsite).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		resp, err := f.uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Equal(t, "TBE-000002", resp.Booking.Reference)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil).Once()
		f.customers.On("GetOrCreateByPhone", mock.Anything, mock.Anything).
			Return(&domain.Customer{ID: uuid.New()}, false, nil).Once()
		f.bookings.On("ExistsByReference", mock.Anything, "TBE-A1B2C3").Return(true, nil).Times(maxReferenceAttempts)

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Execute_RepositoryError(t *testing.T) {
	f := newFixture(t)
	f.bookings.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}
