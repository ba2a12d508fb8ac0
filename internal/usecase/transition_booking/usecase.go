package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/customer"
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case смены статуса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute применяет действие к бронированию.
// Статус бронирования и счётчики клиента меняются в одной транзакции:
// при завершении начисление выполняется ровно один раз, независимо от статуса оплаты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: booking=%s, action=%s", req.BookingID, req.Action)

	// 1. Валидация входных данных
	action, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.TransitionResult

	// 2. Чтение с блокировкой, проверка перехода и запись в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("TransitionBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		// 2.2. Получаем клиента (FOR UPDATE), если бронирование с ним связано
		var customer *domain.Customer
		if action == domain.ActionComplete && booking.CustomerID != nil {
			customer, err = uc.customerRepo.GetByID(txCtx, *booking.CustomerID)
			if err != nil && !errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Error("TransitionBooking: failed to get customer id=%s: %v", *booking.CustomerID, err)
				return fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
			}
			if customer == nil {
				uc.logger.Warn("TransitionBooking: customer id=%s of booking %s not found, skipping accrual",
					*booking.CustomerID, booking.Reference)
			}
		}

		// 2.3. Проверка перехода; входные данные не изменяются
		result, err = domain.ApplyTransition(*booking, customer, action, now)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) {
				uc.logger.Warn("TransitionBooking: %s rejected for booking %s in status %s",
					action, booking.Reference, booking.Status)
				return fmt.Errorf("%w: %s", ErrInvalidTransition, domain.TransitionMessage(action))
			}
			uc.logger.Error("TransitionBooking: apply %s to booking %s: %v", action, booking.Reference, err)
			return fmt.Errorf("%w: %w", ErrInternal, err)
		}

		// 2.4. Сохраняем новый статус, условие на прежний статус защищает от гонки
		if err := uc.bookingRepo.UpdateLifecycle(txCtx, &result.Booking, result.From); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				uc.logger.Warn("TransitionBooking: booking %s status changed concurrently", booking.Reference)
				return fmt.Errorf("%w: %s", ErrInvalidTransition, domain.TransitionMessage(action))
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("TransitionBooking: failed to update booking %s: %v", booking.Reference, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		// 2.5. Начисление клиенту при завершении
		if result.Accrued {
			if err := uc.customerRepo.Accrue(txCtx, result.Customer.ID, booking.ServicePrice); err != nil {
				uc.logger.Error("TransitionBooking: failed to accrue customer id=%s: %v", result.Customer.ID, err)
				return fmt.Errorf("%w: failed to accrue customer: %w", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition):
			uc.metrics.IncBookingTransition(string(action), resultRejected)
			return nil, err
		case errors.Is(err, ErrBookingNotFound):
			uc.metrics.IncBookingTransition(string(action), resultRejected)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.metrics.IncBookingTransition(string(action), resultError)
			return nil, err
		default:
			uc.metrics.IncBookingTransition(string(action), resultError)
			uc.logger.Error("TransitionBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	booking := result.Booking
	uc.logger.Info("TransitionBooking: booking %s %s -> %s (accrued=%t)",
		booking.Reference, result.From, result.To, result.Accrued)

	// 3. Метрики и уведомления - после фиксации транзакции
	uc.metrics.IncBookingTransition(string(action), resultOK)
	uc.publisher.Publish(ctx, domain.NewBookingEvent(domain.EventForAction(action), &booking, now))

	return &Response{
		Booking:  &booking,
		Customer: result.Customer,
		From:     result.From,
		To:       result.To,
		Accrued:  result.Accrued,
	}, nil
}
