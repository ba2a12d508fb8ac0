package get_availability

import (
	"time"

	"github.com/m04kA/SMC-BeautyBooking/pkg/types"
)

// Request модель запроса доступности на дату
type Request struct {
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность услуги, 1..1440 минут
}

// Response модель ответа
type Response struct {
	Date      time.Time
	Available bool   // false, если в этот день салон закрыт
	Message   string // Причина закрытия, например "Closed on Sunday"
	Slots     []Slot // По возрастанию времени начала
}

// Slot кандидат на бронирование
type Slot struct {
	StartTime types.TimeString // "14:00"
	Label     string           // "2:00 PM"
	Available bool
}
