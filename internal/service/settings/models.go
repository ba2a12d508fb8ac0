package settings

import (
	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
)

// SettingsResponse публичные настройки салона
type SettingsResponse struct {
	BusinessName           string   `json:"businessName"`
	Phone                  string   `json:"phone,omitempty"`
	WhatsApp               string   `json:"whatsapp,omitempty"`
	Email                  string   `json:"email,omitempty"`
	Address                string   `json:"address,omitempty"`
	OpeningTime            string   `json:"openingTime"` // "09:00"
	ClosingTime            string   `json:"closingTime"` // "19:00"
	ClosedDays             []string `json:"closedDays"`
	SlotDurationMinutes    int      `json:"slotDurationMinutes"`
	MinAdvanceBookingHours int      `json:"minAdvanceBookingHours"`
	MaxAdvanceBookingDays  int      `json:"maxAdvanceBookingDays"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BusinessSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	closed := make([]string, 0, len(s.ClosedDays))
	for _, d := range s.ClosedDays {
		closed = append(closed, d.String())
	}

	return &SettingsResponse{
		BusinessName:           s.BusinessName,
		Phone:                  s.Phone,
		WhatsApp:               s.WhatsApp,
		Email:                  s.Email,
		Address:                s.Address,
		OpeningTime:            s.OpeningTime.String(),
		ClosingTime:            s.ClosingTime.String(),
		ClosedDays:             closed,
		SlotDurationMinutes:    s.SlotDurationMinutes,
		MinAdvanceBookingHours: s.MinAdvanceBookingHours,
		MaxAdvanceBookingDays:  s.MaxAdvanceBookingDays,
	}
}
