package notifications

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	ListAdmin(ctx context.Context) ([]*domain.AdminNotification, error)
	MarkAllRead(ctx context.Context) error
	ListClient(ctx context.Context) ([]*domain.ClientNotification, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
