package trigger_reminders

import (
	"context"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListPaid(ctx context.Context) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	GetAutomationSettings(ctx context.Context) (domain.AutomationSettings, error)
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	CreateClient(ctx context.Context, n *domain.ClientNotification) error
	ListReminderKeys(ctx context.Context) (map[string]struct{}, error)
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	SendClassReminder(ctx context.Context, booking *domain.Booking, slot domain.TimeSlot) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
