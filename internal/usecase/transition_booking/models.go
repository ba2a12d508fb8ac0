package transition_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID uuid.UUID
	Action    string // confirm, start, complete, cancel, no_show
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	// Customer обновлённый клиент; nil, если бронирование не связано с клиентом
	Customer *domain.Customer
	From     domain.BookingStatus
	To       domain.BookingStatus
	Accrued  bool
}
