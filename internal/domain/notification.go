package domain

import "time"

// AdminNotificationType тип события для админской ленты уведомлений
type AdminNotificationType string

const (
	NotificationNewBooking AdminNotificationType = "new_booking"
	NotificationNewInquiry AdminNotificationType = "new_inquiry"
)

// AdminNotification запись админской ленты: новое бронирование или запрос
type AdminNotification struct {
	ID        string
	Type      AdminNotificationType
	TargetID  string // booking id
	UserName  string
	Summary   string // название продукта
	Timestamp time.Time
	Read      bool
}

// ClientNotificationType тип клиентского письма
type ClientNotificationType string

const (
	ClientPreBookingConfirmation ClientNotificationType = "PRE_BOOKING_CONFIRMATION"
	ClientPaymentReceipt         ClientNotificationType = "PAYMENT_RECEIPT"
	ClientClassReminder          ClientNotificationType = "CLASS_REMINDER"
	ClientIncentiveRenewal       ClientNotificationType = "INCENTIVE_RENEWAL"
)

// ClientNotification журнальная запись об отправленном клиенту письме.
// BookingCode для напоминаний содержит ключ дедупликации
// "bookingCode_date_time", чтобы одно напоминание не уходило дважды.
type ClientNotification struct {
	ID          string
	CreatedAt   time.Time
	ClientName  string
	ClientEmail string
	Type        ClientNotificationType
	Channel     string // всегда "Email"
	Status      string // "Sent" | "Scheduled"
	BookingCode string
	ScheduledAt *time.Time
}
