package get_availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/availability"
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	bookingRepo BookingRepository
	calendar    domain.BusinessCalendar
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// calendar загружается один раз при старте и передаётся по значению.
func NewUseCase(bookingRepo BookingRepository, calendar domain.BusinessCalendar, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		calendar:    calendar,
		logger:      logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Отсутствие свободных слотов - не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailability: date=%s, duration=%d", req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 2. Выходной день - отвечаем сразу, без обращения к БД
	if uc.calendar.IsClosed(req.Date) {
		reason := uc.calendar.ClosedReason(req.Date)
		uc.logger.Info("GetAvailability: %s", reason)
		return &Response{
			Date:      req.Date,
			Available: false,
			Message:   reason,
			Slots:     []Slot{},
		}, nil
	}

	// 3. Получаем бронирования, занимающие время в этот день
	date := req.Date
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:          &date,
		OccupyingOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 4. Вычисляем доступность
	result := availability.Compute(req.Date, uc.calendar, time.Duration(req.DurationMinutes)*time.Minute, bookings)

	slots := make([]Slot, len(result.Slots))
	for i, s := range result.Slots {
		slots[i] = Slot{
			StartTime: s.Slot.Start,
			Label:     s.Slot.Start.Label(),
			Available: s.Free,
		}
	}

	uc.logger.Info("GetAvailability: date=%s, %d slots, %d free",
		req.Date.Format(domain.DateFormat), len(slots), result.FreeCount())

	return &Response{
		Date:      result.Date,
		Available: result.Available,
		Message:   result.Reason,
		Slots:     slots,
	}, nil
}
