package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	bookingRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
	"github.com/ceramicalma/ALMA-BookingService/internal/service/bookings/models"
)

// Service сервис административных операций над бронированиями
type Service struct {
	bookingRepo      BookingRepository
	settingsRepo     SettingsRepository
	notificationRepo NotificationRepository
	mailer           MailerClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	notificationRepo NotificationRepository,
	mailer MailerClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:      bookingRepo,
		settingsRepo:     settingsRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// List получает все бронирования
func (s *Service) List(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// Update изменяет контактные данные и цену бронирования
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: booking id=%s", id)

	if req.UserInfo.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdateUserInfo(ctx, id, req.UserInfo, req.Price); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// RemoveSlot снимает один слот с бронирования.
// Бронирование с нулем оставшихся слотов сохраняется: клиент оплатил пакет,
// расписание ему подберут заново.
func (s *Service) RemoveSlot(ctx context.Context, id string, req *models.RemoveSlotRequest) (*models.BookingResponse, error) {
	s.logger.Info("RemoveSlot: booking id=%s, slot %s %s", id, req.Slot.Date, req.Slot.Time)

	booking, err := s.getBooking(ctx, id, "RemoveSlot")
	if err != nil {
		return nil, err
	}

	remaining := make([]domain.TimeSlot, 0, len(booking.Slots))
	found := false
	for _, slot := range booking.Slots {
		if !found && slot.SameDateTime(req.Slot) {
			found = true
			continue
		}
		remaining = append(remaining, slot)
	}
	if !found {
		s.logger.Warn("RemoveSlot: booking id=%s has no slot %s %s", id, req.Slot.Date, req.Slot.Time)
		return nil, ErrSlotNotFound
	}

	if err := s.bookingRepo.UpdateSlots(ctx, id, remaining); err != nil {
		s.logger.Error("RemoveSlot: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: RemoveSlot - repository error: %v", ErrInternal, err)
	}

	booking.Slots = remaining
	return models.FromDomainBooking(booking), nil
}

// RescheduleSlot переносит слот бронирования на другую дату и время.
// Замена выполняется одним UPDATE всего списка слотов: промежуточное
// состояние с задвоенным или пропавшим слотом невозможно.
func (s *Service) RescheduleSlot(ctx context.Context, id string, req *models.RescheduleSlotRequest) (*models.BookingResponse, error) {
	s.logger.Info("RescheduleSlot: booking id=%s, %s %s -> %s %s",
		id, req.OldSlot.Date, req.OldSlot.Time, req.NewSlot.Date, req.NewSlot.Time)

	if err := req.NewSlot.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.getBooking(ctx, id, "RescheduleSlot")
	if err != nil {
		return nil, err
	}

	slots := make([]domain.TimeSlot, len(booking.Slots))
	copy(slots, booking.Slots)

	index := -1
	for i, slot := range slots {
		if slot.SameDateTime(req.OldSlot) {
			index = i
			break
		}
	}
	if index == -1 {
		s.logger.Warn("RescheduleSlot: booking id=%s has no slot %s %s", id, req.OldSlot.Date, req.OldSlot.Time)
		return nil, ErrSlotNotFound
	}

	slots[index] = req.NewSlot
	if domain.HasDuplicateSlots(slots) {
		s.logger.Warn("RescheduleSlot: booking id=%s already holds a slot at %s %s", id, req.NewSlot.Date, req.NewSlot.Time)
		return nil, ErrDuplicateSlot
	}
	domain.SortSlots(slots)

	if err := s.bookingRepo.UpdateSlots(ctx, id, slots); err != nil {
		s.logger.Error("RescheduleSlot: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: RescheduleSlot - repository error: %v", ErrInternal, err)
	}

	booking.Slots = slots
	return models.FromDomainBooking(booking), nil
}

// DeleteInRange удаляет слоты всех бронирований за период [startDate, endDate]
// включительно. Бронирование, все слоты которого попали в период, удаляется
// целиком; у остальных период вырезается из расписания. Вся зачистка идет
// в одной транзакции: календарь не наблюдает частично вычищенный период.
func (s *Service) DeleteInRange(ctx context.Context, req *models.DeleteInRangeRequest) (*models.DeleteInRangeResponse, error) {
	s.logger.Info("DeleteInRange: period=%s to %s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidTimeRange
	}

	resp := &models.DeleteInRangeResponse{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		bookings, err := s.bookingRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: DeleteInRange - list bookings: %v", ErrInternal, err)
		}

		for _, booking := range bookings {
			if len(booking.Slots) == 0 {
				continue
			}

			remaining := make([]domain.TimeSlot, 0, len(booking.Slots))
			for _, slot := range booking.Slots {
				if !domain.SlotInRange(slot, req.StartDate, req.EndDate) {
					remaining = append(remaining, slot)
				}
			}

			switch {
			case len(remaining) == len(booking.Slots):
				// Период бронирование не затронул
			case len(remaining) == 0:
				if err := s.bookingRepo.Delete(txCtx, booking.ID); err != nil {
					return fmt.Errorf("%w: DeleteInRange - delete booking %s: %v", ErrInternal, booking.ID, err)
				}
				resp.DeletedBookings++
			default:
				if err := s.bookingRepo.UpdateSlots(txCtx, booking.ID, remaining); err != nil {
					return fmt.Errorf("%w: DeleteInRange - trim booking %s: %v", ErrInternal, booking.ID, err)
				}
				resp.TrimmedBookings++
			}
		}

		return nil
	})
	if err != nil {
		s.logger.Error("DeleteInRange: %v", err)
		return nil, err
	}

	s.logger.Info("DeleteInRange: deleted=%d, trimmed=%d", resp.DeletedBookings, resp.TrimmedBookings)
	return resp, nil
}

// UpdateAttendance отмечает посещаемость слота
func (s *Service) UpdateAttendance(ctx context.Context, id string, req *models.UpdateAttendanceRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateAttendance: booking id=%s, slot %s %s, status=%s", id, req.Slot.Date, req.Slot.Time, req.Status)

	if !req.Status.IsValid() {
		return nil, ErrInvalidAttendance
	}

	booking, err := s.getBooking(ctx, id, "UpdateAttendance")
	if err != nil {
		return nil, err
	}
	if !booking.HasSlotAt(req.Slot.Date, req.Slot) {
		s.logger.Warn("UpdateAttendance: booking id=%s has no slot %s %s", id, req.Slot.Date, req.Slot.Time)
		return nil, ErrSlotNotFound
	}

	// Отметки сливаются с существующими по ключу "date_time":
	// параллельные отметки разных слотов не затирают друг друга
	if err := s.bookingRepo.MergeAttendance(ctx, id, req.Slot.Key(), req.Status); err != nil {
		s.logger.Error("UpdateAttendance: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateAttendance - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// MarkPaid отмечает бронирование оплаченным и фиксирует детали платежа.
// Счетчики занятости нигде не хранятся: следующий пересчет по живому списку
// бронирований сам учтет изменение статуса.
func (s *Service) MarkPaid(ctx context.Context, id string, req *models.MarkPaidRequest) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaid: booking id=%s, method=%s, amount=%.2f", id, req.Method, req.Amount)

	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, id, "MarkPaid")
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	details := &domain.PaymentDetails{
		Method:     req.Method,
		Amount:     req.Amount,
		ReceivedAt: now,
	}

	if err := s.bookingRepo.UpdatePayment(ctx, id, true, details); err != nil {
		s.logger.Error("MarkPaid: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	booking.IsPaid = true
	booking.PaymentDetails = details

	// Квитанция уходит после фиксации оплаты; ошибка письма оплату не отменяет
	s.sendReceipt(ctx, booking)

	return models.FromDomainBooking(booking), nil
}

// MarkUnpaid снимает отметку оплаты и очищает детали платежа
func (s *Service) MarkUnpaid(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("MarkUnpaid: booking id=%s", id)

	if err := s.bookingRepo.UpdatePayment(ctx, id, false, nil); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkUnpaid: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkUnpaid - repository error: %v", ErrInternal, err)
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет бронирование целиком
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: booking id=%s", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getBooking(ctx context.Context, id, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// sendReceipt отправляет квитанцию об оплате, если автоматизация включена
func (s *Service) sendReceipt(ctx context.Context, booking *domain.Booking) {
	automation, err := s.settingsRepo.GetAutomationSettings(ctx)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		automation = domain.DefaultAutomationSettings()
	} else if err != nil {
		s.logger.Error("MarkPaid: failed to get automation settings: %v", err)
		return
	}
	if !automation.PaymentReceipt.Enabled {
		return
	}

	if err := s.mailer.SendPaymentReceipt(ctx, booking); err != nil {
		s.logger.Error("MarkPaid: failed to send receipt for booking id=%s: %v", booking.ID, err)
		return
	}

	journal := &domain.ClientNotification{
		ID:          uuid.NewString(),
		CreatedAt:   s.timeProvider.Now(),
		ClientName:  booking.UserInfo.FullName(),
		ClientEmail: booking.UserInfo.Email,
		Type:        domain.ClientPaymentReceipt,
		Channel:     "Email",
		Status:      "Sent",
		BookingCode: booking.BookingCode,
	}
	if err := s.notificationRepo.CreateClient(ctx, journal); err != nil {
		s.logger.Error("MarkPaid: failed to journal receipt for booking id=%s: %v", booking.ID, err)
	}
}
