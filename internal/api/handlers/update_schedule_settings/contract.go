package update_schedule_settings

import (
	"context"

	settingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/settings"
)

type SettingsService interface {
	UpdateScheduleSettings(ctx context.Context, req *settingsService.UpdateScheduleSettingsRequest) (*settingsService.ScheduleSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
