package trigger_reminders

import (
	"context"

	triggerReminders "github.com/ceramicalma/ALMA-BookingService/internal/usecase/trigger_reminders"
)

type TriggerRemindersUseCase interface {
	Execute(ctx context.Context) (*triggerReminders.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
