package mark_notifications_read

import "context"

type NotificationsService interface {
	MarkAllRead(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
