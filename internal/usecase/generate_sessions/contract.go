package generate_sessions

import (
	"context"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// ProductRepository интерфейс репозитория продуктов
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBySlotDates(ctx context.Context, dates []string) ([]*domain.Booking, error)
}

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
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
