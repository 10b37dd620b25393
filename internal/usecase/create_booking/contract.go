package create_booking

import (
	"context"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	ListBySlotDates(ctx context.Context, dates []string) ([]*domain.Booking, error)
}

// ProductRepository интерфейс репозитория продуктов
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// SettingsRepository интерфейс репозитория настроек студии
type SettingsRepository interface {
	GetAvailability(ctx context.Context) (domain.WeeklyAvailability, error)
	GetScheduleOverrides(ctx context.Context) (domain.ScheduleOverrides, error)
	GetClassCapacity(ctx context.Context) (domain.ClassCapacity, error)
	GetAutomationSettings(ctx context.Context) (domain.AutomationSettings, error)
	GetBankDetails(ctx context.Context) (domain.BankDetails, error)
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	CreateAdmin(ctx context.Context, n *domain.AdminNotification) error
	CreateClient(ctx context.Context, n *domain.ClientNotification) error
}

// MailerClient интерфейс почтового клиента
type MailerClient interface {
	SendPreBookingConfirmation(ctx context.Context, booking *domain.Booking, bank domain.BankDetails) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
