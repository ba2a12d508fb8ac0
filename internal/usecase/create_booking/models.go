package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	// Данные клиента; по телефону находим или создаём карточку клиента
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	// Снимок услуги на момент бронирования
	ServiceID              *int64 // Необязательная ссылка на каталог
	ServiceName            string
	ServiceCategory        string
	ServicePrice           decimal.Decimal
	ServiceDurationMinutes int

	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала, например "14:00"
	Notes     *string
	Source    string // website, phone, walk-in; пусто - website
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking         *domain.Booking
	CustomerCreated bool // true, если карточка клиента создана этим запросом
}
