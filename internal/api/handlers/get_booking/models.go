package get_booking

import (
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

// PublicBookingResponse данные записи, которые видит клиент по коду.
// Телефон, внутренние заметки и идентификаторы не раскрываются.
type PublicBookingResponse struct {
	Reference          string `json:"reference"`
	CustomerName       string `json:"customerName"`
	ServiceName        string `json:"serviceName"`
	ServicePrice       string `json:"servicePrice"`
	BookingDate        string `json:"bookingDate"`
	StartTime          string `json:"startTime"`
	TimeLabel          string `json:"timeLabel"`
	DurationMinutes    int    `json:"durationMinutes"`
	Status             string `json:"status"`
	StatusLabel        string `json:"statusLabel"`
	PaymentStatus      string `json:"paymentStatus"`
	PaymentStatusLabel string `json:"paymentStatusLabel"`
}

// NewPublicBooking конвертирует DTO сервиса в публичный ответ
func NewPublicBooking(b *models.BookingResponse) *PublicBookingResponse {
	return &PublicBookingResponse{
		Reference:          b.Reference,
		CustomerName:       b.CustomerName,
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		BookingDate:        b.BookingDate,
		StartTime:          b.StartTime,
		TimeLabel:          b.TimeLabel,
		DurationMinutes:    b.ServiceDurationMinutes,
		Status:             b.Status,
		StatusLabel:        b.StatusLabel,
		PaymentStatus:      b.PaymentStatus,
		PaymentStatusLabel: b.PaymentStatusLabel,
	}
}
