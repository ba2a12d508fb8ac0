package get_availability

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_availability"
)

// ErrInvalidDuration длительность не является целым числом
var ErrInvalidDuration = errors.New("invalid duration")

// SlotResponse HTTP response model слота
type SlotResponse struct {
	Time      string `json:"time"`  // "14:00"
	Label     string `json:"label"` // "2:00 PM"
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string         `json:"date"`
	Available bool           `json:"available"`
	Message   string         `json:"message,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case.
// Без параметра duration берётся длительность по умолчанию; явный 0 отклоняет use case.
func ToUseCaseRequest(dateStr, durationStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{Date: date, DurationMinutes: domain.DefaultRequestedDuration}
	if durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
		}
		req.DurationMinutes = duration
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			Time:      s.StartTime.String(),
			Label:     s.Label,
			Available: s.Available,
		}
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Available: resp.Available,
		Message:   resp.Message,
		Slots:     slots,
	}
}
