package get_schedule_settings

import (
	"context"

	settingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/settings"
)

type SettingsService interface {
	GetScheduleSettings(ctx context.Context) (*settingsService.ScheduleSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
