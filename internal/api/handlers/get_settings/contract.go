package get_settings

import (
	"context"

	"github.com/m04kA/SMC-BeautyBooking/internal/service/settings"
)

type SettingsService interface {
	Get(ctx context.Context) (*settings.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
