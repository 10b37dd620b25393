package bookings

import (
	"context"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	UpdateUserInfo(ctx context.Context, id string, userInfo domain.UserInfo, price float64) error
	UpdateSlots(ctx context.Context, id string, slots []domain.TimeSlot) error
	UpdatePayment(ctx context.Context, id string, isPaid bool, details *domain.PaymentDetails) error
	MergeAttendance(ctx context.Context, id string, slotKey string, status domain.AttendanceStatus) error
	Delete(ctx context.Context, id string) error
}

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	GetAutomationSettings(ctx context.Context) (domain.AutomationSettings, error)
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	CreateClient(ctx context.Context, n *domain.ClientNotification) error
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	SendPaymentReceipt(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
