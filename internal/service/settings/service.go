package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-BeautyBooking/internal/domain"
	settingsRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/settings"
)

// Service источник настроек бизнеса.
// Настройки читаются один раз при старте: запись в БД, иначе значения из конфига.
type Service struct {
	settingsRepo SettingsRepository
	fallback     *domain.BusinessSettings
	logger       Logger

	mu      sync.RWMutex
	current *domain.BusinessSettings
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, fallback *domain.BusinessSettings, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		fallback:     fallback,
		logger:       logger,
	}
}

// Load читает настройки и проверяет, что из них получается корректный календарь
func (s *Service) Load(ctx context.Context) (*domain.BusinessSettings, error) {
	loaded, err := s.settingsRepo.Get(ctx)
	switch {
	case err == nil:
		s.logger.Info("Load: using business settings from database (%s)", loaded.BusinessName)
	case errors.Is(err, settingsRepo.ErrSettingsNotFound):
		if s.fallback == nil {
			return nil, fmt.Errorf("%w: no settings row and no fallback", ErrInvalidSettings)
		}
		s.logger.Warn("Load: business_settings row not found, using configuration defaults")
		loaded = s.fallback
	default:
		s.logger.Error("Load: failed to read business settings: %v", err)
		return nil, fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
	}

	if err := loaded.Calendar().Validate(); err != nil {
		s.logger.Error("Load: invalid business settings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()

	s.logger.Info("Load: open %s-%s, closed %s, slot %d min, advance %dh-%dd",
		loaded.OpeningTime, loaded.ClosingTime, domain.JoinWeekdays(loaded.ClosedDays),
		loaded.SlotDurationMinutes, loaded.MinAdvanceBookingHours, loaded.MaxAdvanceBookingDays)

	return loaded, nil
}

// Get возвращает загруженные настройки
func (s *Service) Get(_ context.Context) (*SettingsResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return FromDomainSettings(s.current), nil
}
