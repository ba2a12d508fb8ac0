package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	ServiceID              *int64          `json:"serviceId,omitempty"`
	ServiceName            string          `json:"serviceName"`
	ServiceCategory        string          `json:"serviceCategory,omitempty"`
	ServicePrice           decimal.Decimal `json:"servicePrice"` // число или строка "150000"
	ServiceDurationMinutes int             `json:"serviceDurationMinutes"`

	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *models.BookingResponse `json:"booking"`
	Message string                  `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		CustomerName:           r.CustomerName,
		CustomerPhone:          r.CustomerPhone,
		CustomerEmail:          r.CustomerEmail,
		ServiceID:              r.ServiceID,
		ServiceName:            r.ServiceName,
		ServiceCategory:        r.ServiceCategory,
		ServicePrice:           r.ServicePrice,
		ServiceDurationMinutes: r.ServiceDurationMinutes,
		Date:                   bookingDate,
		StartTime:              startTime,
		Notes:                  r.Notes,
		Source:                 r.Source,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	booking := models.FromDomainBooking(resp.Booking)
	return &CreateBookingResponse{
		Booking: booking,
		Message: fmt.Sprintf("Booking %s received for %s at %s. We will confirm it shortly.",
			booking.Reference, booking.BookingDate, booking.TimeLabel),
	}
}
