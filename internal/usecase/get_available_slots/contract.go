package get_available_slots

import (
	"context"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBySlotDates(ctx context.Context, dates []string) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	GetAvailability(ctx context.Context) (domain.WeeklyAvailability, error)
	GetScheduleOverrides(ctx context.Context) (domain.ScheduleOverrides, error)
	GetClassCapacity(ctx context.Context) (domain.ClassCapacity, error)
	GetCapacityMessages(ctx context.Context) (domain.CapacityMessageSettings, error)
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
