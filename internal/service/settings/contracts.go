package settings

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	GetAvailability(ctx context.Context) (domain.WeeklyAvailability, error)
	SaveAvailability(ctx context.Context, availability domain.WeeklyAvailability) error
	GetScheduleOverrides(ctx context.Context) (domain.ScheduleOverrides, error)
	SaveScheduleOverrides(ctx context.Context, overrides domain.ScheduleOverrides) error
	GetClassCapacity(ctx context.Context) (domain.ClassCapacity, error)
	SaveClassCapacity(ctx context.Context, capacity domain.ClassCapacity) error
	GetCapacityMessages(ctx context.Context) (domain.CapacityMessageSettings, error)
	SaveCapacityMessages(ctx context.Context, settings domain.CapacityMessageSettings) error
	GetAutomationSettings(ctx context.Context) (domain.AutomationSettings, error)
	SaveAutomationSettings(ctx context.Context, settings domain.AutomationSettings) error
	GetBankDetails(ctx context.Context) (domain.BankDetails, error)
	SaveBankDetails(ctx context.Context, details domain.BankDetails) error
	GetConfirmationMessage(ctx context.Context) (string, error)
	SaveConfirmationMessage(ctx context.Context, message string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
