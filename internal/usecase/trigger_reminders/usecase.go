package trigger_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
)

// UseCase use case прогона напоминаний о занятиях.
// Вызывается планировщиком; прогон идемпотентен: по каждому слоту каждого
// бронирования напоминание уходит не больше одного раза.
type UseCase struct {
	bookingRepo      BookingRepository
	settingsRepo     SettingsRepository
	notificationRepo NotificationRepository
	mailer           MailerClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	notificationRepo NotificationRepository,
	mailer MailerClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		settingsRepo:     settingsRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute отправляет напоминания по оплаченным бронированиям, чьи занятия
// начинаются в пределах настроенного интервала
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	// 1. Проверяем, что автоматизация включена
	automation, err := uc.settingsRepo.GetAutomationSettings(ctx)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		automation = domain.DefaultAutomationSettings()
	} else if err != nil {
		uc.logger.Error("TriggerReminders: failed to get automation settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get automation settings: %v", ErrInternal, err)
	}
	if !automation.ClassReminder.Enabled {
		uc.logger.Info("TriggerReminders: class reminders disabled, skipping run")
		return &Response{}, nil
	}
	lead := time.Duration(automation.ReminderLeadHours()) * time.Hour

	// 2. Оплаченные бронирования и журнал уже отправленных напоминаний
	bookings, err := uc.bookingRepo.ListPaid(ctx)
	if err != nil {
		uc.logger.Error("TriggerReminders: failed to list paid bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list paid bookings: %v", ErrInternal, err)
	}

	sent, err := uc.notificationRepo.ListReminderKeys(ctx)
	if err != nil {
		uc.logger.Error("TriggerReminders: failed to list reminder keys: %v", err)
		return nil, fmt.Errorf("%w: failed to list reminder keys: %v", ErrInternal, err)
	}

	// 3. Отбираем слоты в окне [dt-lead, dt) и шлем письма
	resp := &Response{}
	for _, booking := range bookings {
		for _, slot := range booking.Slots {
			dt, err := slot.DateTime()
			if err != nil {
				continue
			}
			if now.Before(dt.Add(-lead)) || !now.Before(dt) {
				continue
			}

			// Ключ дедупликации "bookingCode_date_time"
			key := fmt.Sprintf("%s_%s", booking.BookingCode, slot.Key())
			if _, ok := sent[key]; ok {
				continue
			}

			if err := uc.mailer.SendClassReminder(ctx, booking, slot); err != nil {
				uc.logger.Error("TriggerReminders: failed to send reminder for %s: %v", key, err)
				resp.SkippedCount++
				continue
			}

			journal := &domain.ClientNotification{
				ID:          uuid.NewString(),
				CreatedAt:   now,
				ClientName:  booking.UserInfo.FullName(),
				ClientEmail: booking.UserInfo.Email,
				Type:        domain.ClientClassReminder,
				Channel:     "Email",
				Status:      "Sent",
				BookingCode: key,
			}
			if err := uc.notificationRepo.CreateClient(ctx, journal); err != nil {
				uc.logger.Error("TriggerReminders: failed to journal reminder %s: %v", key, err)
			}
			sent[key] = struct{}{}
			resp.SentCount++
		}
	}

	uc.logger.Info("TriggerReminders: sent=%d, skipped=%d", resp.SentCount, resp.SkippedCount)
	return resp, nil
}
