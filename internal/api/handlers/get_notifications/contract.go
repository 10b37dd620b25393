package get_notifications

import (
	"context"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

type NotificationsService interface {
	ListAdmin(ctx context.Context) ([]*domain.AdminNotification, error)
	ListClient(ctx context.Context) ([]*domain.ClientNotification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
