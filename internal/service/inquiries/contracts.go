package inquiries

import (
	"context"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// InquiryRepository интерфейс репозитория запросов на мероприятия
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.GroupInquiry) error
	List(ctx context.Context) ([]*domain.GroupInquiry, error)
	UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error
}

// NotificationRepository интерфейс для записи в ленту администратора
type NotificationRepository interface {
	CreateAdmin(ctx context.Context, notification *domain.AdminNotification) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
