package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/availability"
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BeautyBooking/pkg/ptr"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

// maxReferenceAttempts количество попыток подобрать свободный код бронирования
const maxReferenceAttempts = 5

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	customerRepo    CustomerRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	calendar        domain.BusinessCalendar
	referencePrefix string
	newReference    func(prefix string) string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	calendar domain.BusinessCalendar,
	referencePrefix string,
	logger Logger,
) *UseCase {
	if referencePrefix == "" {
		referencePrefix = domain.DefaultReferencePrefix
	}
	return &UseCase{
		bookingRepo:     bookingRepo,
		customerRepo:    customerRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		calendar:        calendar,
		referencePrefix: referencePrefix,
		newReference:    domain.NewReference,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка окна бронирования выполняется до проверки занятости слота.
// Проверка занятости и вставка идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: phone=%s, service=%q, date=%s, time=%s, duration=%d",
		req.CustomerPhone, req.ServiceName, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceDurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	slot := domain.TimeSlot{
		Date:     req.Date,
		Start:    req.StartTime,
		Duration: time.Duration(req.ServiceDurationMinutes) * time.Minute,
	}

	// 3. Окно бронирования считается от момента начала в часовом поясе сервера
	start := slot.StartAt(now.Location())
	if !uc.calendar.WithinAdvanceWindow(start, now) {
		earliest, latest := uc.calendar.AdvanceWindow(now)
		uc.logger.Warn("CreateBooking: start %s outside window [%s, %s]",
			start.Format("2006-01-02 15:04"), earliest.Format("2006-01-02 15:04"), latest.Format("2006-01-02 15:04"))
		return nil, fmt.Errorf("%w: bookings must be made at least %d hours and at most %d days in advance",
			ErrOutsideAdvanceWindow, int(uc.calendar.MinAdvance.Hours()), int(uc.calendar.MaxAdvance.Hours()/24))
	}

	// 4. Рабочий день и рабочие часы
	if err := validateSlotPlacement(uc.calendar, slot); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var (
		result          *domain.Booking
		customerCreated bool
	)

	// 5. Проверка пересечений и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем активные записи этого дня
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			Date:          ptr.Ptr(req.Date),
			OccupyingOnly: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 5.2. Полуинтервалы: запись, закончившаяся в 11:00, не мешает записи на 11:00
		if availability.Overlaps(slot, availability.OccupiedSlots(existing)) {
			uc.logger.Warn("CreateBooking: slot %s %s is already taken",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return fmt.Errorf("%w: %s at %s overlaps an existing booking",
				ErrSlotUnavailable, req.Date.Format(domain.DateFormat), req.StartTime)
		}

		// 5.3. Находим или создаём клиента по телефону
		customer, created, err := uc.customerRepo.GetOrCreateByPhone(txCtx, &domain.Customer{
			Name:  req.CustomerName,
			Phone: req.CustomerPhone,
			Email: req.CustomerEmail,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get or create customer phone=%s: %v", req.CustomerPhone, err)
			return fmt.Errorf("%w: failed to get or create customer: %w", ErrInternal, err)
		}
		customerCreated = created

		// 5.4. Код бронирования
		reference, err := uc.generateReference(txCtx)
		if err != nil {
			return err
		}

		// 5.5. Создаём бронирование
		booking := &domain.Booking{
			Reference:              reference,
			CustomerID:             ptr.Ptr(customer.ID),
			CustomerName:           req.CustomerName,
			CustomerPhone:          req.CustomerPhone,
			CustomerEmail:          req.CustomerEmail,
			ServiceID:              req.ServiceID,
			ServiceName:            req.ServiceName,
			ServiceCategory:        req.ServiceCategory,
			ServicePrice:           req.ServicePrice,
			ServiceDurationMinutes: req.ServiceDurationMinutes,
			Date:                   req.Date,
			StartTime:              req.StartTime,
			Status:                 domain.StatusPending,
			PaymentStatus:          domain.PaymentUnpaid,
			Notes:                  req.Notes,
			Source:                 req.Source,
		}

		saved, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s %s taken concurrently",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return fmt.Errorf("%w: slot was just taken", ErrSlotUnavailable)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		// Конкурентная транзакция заняла слот первой
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
			err = fmt.Errorf("%w: slot was just taken", ErrSlotUnavailable)
		}
		if errors.Is(err, ErrSlotUnavailable) {
			uc.metrics.IncSlotConflict()
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%s reference=%s created (customer created=%t)",
		result.ID, result.Reference, customerCreated)

	// 6. Метрики и уведомления - после фиксации транзакции
	uc.metrics.IncBookingCreated(result.Source)
	uc.publisher.Publish(ctx, domain.NewBookingEvent(domain.EventBookingCreated, result, now))

	return &Response{
		Booking:         result,
		CustomerCreated: customerCreated,
	}, nil
}

// generateReference подбирает код, которого ещё нет в БД.
// Ошибка вставки прерывает транзакцию PostgreSQL, поэтому проверяем заранее.
func (uc *UseCase) generateReference(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		reference := uc.newReference(uc.referencePrefix)

		exists, err := uc.bookingRepo.ExistsByReference(ctx, reference)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check reference %s: %v", reference, err)
			return "", fmt.Errorf("%w: failed to check reference: %w", ErrInternal, err)
		}
		if !exists {
			return reference, nil
		}
		uc.logger.Warn("CreateBooking: reference %s collision, attempt %d", reference, attempt)
	}
	return "", fmt.Errorf("%w: could not generate unique reference after %d attempts", ErrInternal, maxReferenceAttempts)
}
