package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// ErrInvalidFilter возвращается при некорректных параметрах фильтра
var ErrInvalidFilter = errors.New("invalid bookings filter")

// Request модели

// ListBookingsRequest фильтр списка бронирований; все поля опциональны
type ListBookingsRequest struct {
	Date   *string `json:"date,omitempty"`   // "2025-10-15"
	Status *string `json:"status,omitempty"` // pending, confirmed, ...
	Phone  *string `json:"phone,omitempty"`
	Limit  uint64  `json:"limit,omitempty"`
	Offset uint64  `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Limit:  r.Limit,
		Offset: r.Offset,
	}

	if r.Date != nil && *r.Date != "" {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidFilter)
		}
		filter.Date = &date
	}

	if r.Status != nil && *r.Status != "" {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		filter.Status = &status
	}

	if r.Phone != nil {
		phone := strings.TrimSpace(*r.Phone)
		if phone != "" {
			filter.Phone = &phone
		}
	}

	return filter, nil
}

// UpdatePaymentRequest запрос на смену статуса оплаты
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         uuid.UUID  `json:"id"`
	Reference  string     `json:"reference"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	ServiceID              *int64 `json:"serviceId,omitempty"`
	ServiceName            string `json:"serviceName"`
	ServiceCategory        string `json:"serviceCategory,omitempty"`
	ServicePrice           string `json:"servicePrice"` // десятичная строка, "150000.00"
	ServiceDurationMinutes int    `json:"serviceDurationMinutes"`

	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	TimeLabel   string `json:"timeLabel"`   // "10:00 AM"

	Status             string `json:"status"`
	StatusLabel        string `json:"statusLabel"`
	PaymentStatus      string `json:"paymentStatus"`
	PaymentStatusLabel string `json:"paymentStatusLabel"`

	Notes         *string `json:"notes,omitempty"`
	InternalNotes *string `json:"internalNotes,omitempty"`
	Source        string  `json:"source"`

	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ConfirmedAt *string   `json:"confirmedAt,omitempty"` // ISO 8601 format
	CompletedAt *string   `json:"completedAt,omitempty"` // ISO 8601 format
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                     b.ID,
		Reference:              b.Reference,
		CustomerID:             b.CustomerID,
		CustomerName:           b.CustomerName,
		CustomerPhone:          b.CustomerPhone,
		CustomerEmail:          b.CustomerEmail,
		ServiceID:              b.ServiceID,
		ServiceName:            b.ServiceName,
		ServiceCategory:        b.ServiceCategory,
		ServicePrice:           b.ServicePrice.StringFixed(2),
		ServiceDurationMinutes: b.ServiceDurationMinutes,
		BookingDate:            b.Date.Format(domain.DateFormat),
		StartTime:              b.StartTime.String(),
		TimeLabel:              b.StartTime.Label(),
		Status:                 string(b.Status),
		StatusLabel:            b.Status.Label(),
		PaymentStatus:          string(b.PaymentStatus),
		PaymentStatusLabel:     b.PaymentStatus.Label(),
		Notes:                  b.Notes,
		InternalNotes:          b.InternalNotes,
		Source:                 b.Source,
		CreatedAt:              b.CreatedAt,
		UpdatedAt:              b.UpdatedAt,
		ConfirmedAt:            formatTime(b.ConfirmedAt),
		CompletedAt:            formatTime(b.CompletedAt),
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// formatTime конвертирует время в строку ISO 8601
func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
