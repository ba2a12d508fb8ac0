package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetOrCreateByPhone(ctx context.Context, candidate *domain.Customer) (*domain.Customer, bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher рассылка событий после успешного создания
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent)
}

// Metrics бизнес-метрики
type Metrics interface {
	IncBookingCreated(source string)
	IncSlotConflict()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
