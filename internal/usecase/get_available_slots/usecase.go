package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов пакета занятий
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute разрешает слоты недельного шаблона на дату: переопределение даты
// выигрывает у шаблона, занятость пересчитывается по живым бронированиям
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	dateStr := req.Date.Format(domain.DateFormat)

	// 1. Читаем настройки расписания
	availability, err := uc.settingsRepo.GetAvailability(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	overrides, err := uc.settingsRepo.GetScheduleOverrides(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get schedule overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule overrides: %v", ErrInternal, err)
	}

	capacity, err := uc.settingsRepo.GetClassCapacity(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get class capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to get class capacity: %v", ErrInternal, err)
	}

	// 2. Разрешаем слоты на дату
	slots, max := domain.SlotsForDate(availability, overrides, capacity, req.Date)
	if len(slots) == 0 {
		return &Response{Date: dateStr, Slots: []SlotView{}}, nil
	}

	// 3. Загружаем бронирования даты и настройки сообщений
	bookings, err := uc.bookingRepo.ListBySlotDates(ctx, []string{dateStr})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	messages, err := uc.settingsRepo.GetCapacityMessages(ctx)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		messages = domain.DefaultCapacityMessages()
	} else if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get capacity messages: %v", err)
		return nil, fmt.Errorf("%w: failed to get capacity messages: %v", ErrInternal, err)
	}

	// 4. Обогащаем занятостью и фильтруем
	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		target := domain.TimeSlot{Date: dateStr, Time: slot.Time, InstructorID: slot.InstructorID}

		if !req.IncludePast {
			dt, err := target.DateTime()
			if err != nil || !dt.After(now) {
				continue
			}
		}

		occ := domain.CountSessionBookings(bookings, dateStr, target)
		enriched := domain.EnrichedAvailableSlot{
			AvailableSlot:      slot,
			PaidBookingsCount:  occ.PaidBookingsCount,
			TotalBookingsCount: occ.TotalBookingsCount,
			MaxCapacity:        max,
		}
		if !req.IncludeFull && enriched.IsFull() {
			continue
		}

		view := SlotView{EnrichedAvailableSlot: enriched}
		if threshold, ok := messages.Classify(enriched.TotalBookingsCount, max); ok {
			view.AvailabilityLevel = threshold.Level
			view.AvailabilityMessage = threshold.Message
		}
		views = append(views, view)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, slots=%d", dateStr, len(views))

	return &Response{Date: dateStr, Slots: views}, nil
}
