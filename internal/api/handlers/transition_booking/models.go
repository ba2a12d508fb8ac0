package transition_booking

import (
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/customers"
	transitionBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/transition_booking"
)

// TransitionResponse HTTP response model
type TransitionResponse struct {
	Booking  *models.BookingResponse     `json:"booking"`
	Customer *customers.CustomerResponse `json:"customer,omitempty"`
	From     string                      `json:"from"`
	To       string                      `json:"to"`
	Accrued  bool                        `json:"accrued"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionBooking.Response) *TransitionResponse {
	return &TransitionResponse{
		Booking:  models.FromDomainBooking(resp.Booking),
		Customer: customers.FromDomainCustomer(resp.Customer),
		From:     string(resp.From),
		To:       string(resp.To),
		Accrued:  resp.Accrued,
	}
}
