package transition_booking_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	handler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/transition_booking"
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	transitionBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error) {
	args := m.Called(ctx, req)
	if r, ok := args.Get(0).(*transitionBooking.Response); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(uc *mockUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/{action}", handler.NewHandler(uc, logger.NewNop()).Handle).
		Methods(http.MethodPost)
	return r
}

func serve(r *mux.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	id := uuid.New()

	t.Run("completed with accrual", func(t *testing.T) {
		uc := &mockUseCase{}
		customerID := uuid.New()
		uc.On("Execute", mock.Anything, &transitionBooking.Request{BookingID: id, Action: "complete"}).
			Return(&transitionBooking.Response{
				Booking: &domain.Booking{ID: id, Reference: "TBE-4F9A2C", Status: domain.StatusCompleted, ServicePrice: decimal.NewFromInt(150000)},
				Customer: &domain.Customer{
					ID:            customerID,
					TotalBookings: 3,
					TotalSpent:    decimal.NewFromInt(230000),
				},
				From:    domain.StatusInProgress,
				To:      domain.StatusCompleted,
				Accrued: true,
			}, nil).Once()

		rec := serve(newRouter(uc), "/api/v1/bookings/"+id.String()+"/complete")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp handler.TransitionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "in_progress", resp.From)
		assert.Equal(t, "completed", resp.To)
		assert.True(t, resp.Accrued)
		require.NotNil(t, resp.Customer)
		assert.Equal(t, 3, resp.Customer.TotalBookings)
		uc.AssertExpectations(t)
	})

	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "unknown action",
			err:     fmt.Errorf("%w: bad action", transitionBooking.ErrInvalidInput),
			status:  http.StatusBadRequest,
			message: "unknown action",
		},
		{
			name:    "not found",
			err:     transitionBooking.ErrBookingNotFound,
			status:  http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "invalid transition",
			err:     fmt.Errorf("%w: Only confirmed or in-progress bookings can be completed", transitionBooking.ErrInvalidTransition),
			status:  http.StatusConflict,
			message: "Only confirmed or in-progress bookings can be completed",
		},
		{
			name:    "internal",
			err:     fmt.Errorf("%w: boom", transitionBooking.ErrInternal),
			status:  http.StatusInternalServerError,
			message: "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			rec := serve(newRouter(uc), "/api/v1/bookings/"+id.String()+"/complete")
			assert.Equal(t, tc.status, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Error)
		})
	}

	t.Run("invalid booking id", func(t *testing.T) {
		uc := &mockUseCase{}

		rec := serve(newRouter(uc), "/api/v1/bookings/not-a-uuid/confirm")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})
}
