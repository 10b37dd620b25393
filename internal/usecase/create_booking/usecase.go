package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	productRepo      ProductRepository
	settingsRepo     SettingsRepository
	notificationRepo NotificationRepository
	mailer           MailerClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	productRepo ProductRepository,
	settingsRepo SettingsRepository,
	notificationRepo NotificationRepository,
	mailer MailerClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		productRepo:      productRepo,
		settingsRepo:     settingsRepo,
		notificationRepo: notificationRepo,
		mailer:           mailer,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// два клиента не могут одновременно занять последнее место в сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: product=%d, email=%s, slots=%d",
		req.ProductID, req.UserInfo.Email, len(req.Slots))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем продукт из каталога
	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		uc.logger.Warn("CreateBooking: product id=%d not found: %v", req.ProductID, err)
		return nil, ErrProductNotFound
	}

	// 4. Проверяем, что продукт активен и бронируем
	if err := validateProductBookable(product, req.Slots); err != nil {
		uc.logger.Warn("CreateBooking: product id=%d not bookable: %v", req.ProductID, err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверка дублей: только для типов продуктов с занятиями
		if product.Type.HasSlotConflicts() {
			existing, err := uc.bookingRepo.ListByEmail(txCtx, req.UserInfo.Email)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to list bookings by email: %v", err)
				return fmt.Errorf("%w: failed to list bookings by email: %v", ErrInternal, err)
			}
			if dup := findDuplicateSlot(existing, req.Slots); dup != nil {
				uc.logger.Warn("CreateBooking: duplicate booking for %s at %s", dup.Date, dup.Time)
				return ErrDuplicateBooking
			}
		}

		// 5.2. Разрешаем вместимость каждой сессии запроса
		capacities, err := uc.resolveCapacities(txCtx, product, req.Slots)
		if err != nil {
			return err
		}

		// 5.3. Пересчитываем занятость по живому списку бронирований (FOR UPDATE)
		if len(req.Slots) > 0 {
			bookings, err := uc.bookingRepo.ListBySlotDates(txCtx, slotDates(req.Slots))
			if err != nil {
				uc.logger.Error("CreateBooking: failed to list bookings by slot dates: %v", err)
				return fmt.Errorf("%w: failed to list bookings by slot dates: %v", ErrInternal, err)
			}

			for i, slot := range req.Slots {
				occ := domain.CountSessionBookings(bookings, slot.Date, slot)
				if occ.TotalBookingsCount >= capacities[i] {
					uc.logger.Warn("CreateBooking: session %s %s full, %d/%d spots taken",
						slot.Date, slot.Time, occ.TotalBookingsCount, capacities[i])
					return ErrSessionFull
				}
				uc.logger.Info("CreateBooking: session %s %s available, %d/%d spots taken",
					slot.Date, slot.Time, occ.TotalBookingsCount, capacities[i])
			}
		}

		// 5.4. Создаем бронирование со снимком продукта
		slots := make([]domain.TimeSlot, len(req.Slots))
		copy(slots, req.Slots)
		domain.SortSlots(slots)

		booking := &domain.Booking{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductType: product.Type,
			Slots:       slots,
			UserInfo:    req.UserInfo,
			CreatedAt:   now,
			IsPaid:      false,
			Price:       req.Price,
			BookingMode: req.BookingMode,
			// Снимок продукта: бронирование хранит условия на момент покупки
			Product:     *product,
			BookingCode: newBookingCode(now),
		}

		// 5.5. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, code=%s", result.ID, result.BookingCode)

	// 6. Пост-обработка вне транзакции: уведомления не откатывают бронирование
	uc.notifyAdmin(ctx, result, now)
	uc.sendPreBookingEmail(ctx, result, now)

	return &Response{
		ID:          result.ID,
		BookingCode: result.BookingCode,
		ProductID:   result.ProductID,
		ProductType: result.ProductType,
		ProductName: result.Product.Name,
		Slots:       result.Slots,
		UserInfo:    result.UserInfo,
		Price:       result.Price,
		IsPaid:      result.IsPaid,
		ExpiryDate:  result.ExpiryDate(),
		CreatedAt:   result.CreatedAt,
	}, nil
}

// resolveCapacities возвращает вместимость сессии для каждого слота запроса.
// Вводные классы используют правила расписания продукта, пакеты занятий -
// недельный шаблон студии с точечными переопределениями.
func (uc *UseCase) resolveCapacities(ctx context.Context, product *domain.Product, slots []domain.TimeSlot) ([]int, error) {
	capacities := make([]int, len(slots))

	if product.IsIntroductoryClass() {
		for i, slot := range slots {
			capacity, ok := domain.SessionCapacityFor(product.SchedulingRules, product.Overrides, slot)
			if !ok {
				uc.logger.Warn("CreateBooking: no session at %s %s for product id=%d", slot.Date, slot.Time, product.ID)
				return nil, ErrSessionNotFound
			}
			capacities[i] = capacity
		}
		return capacities, nil
	}

	availability, err := uc.settingsRepo.GetAvailability(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("CreateBooking: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	overrides, err := uc.settingsRepo.GetScheduleOverrides(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("CreateBooking: failed to get schedule overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule overrides: %v", ErrInternal, err)
	}

	capacity, err := uc.settingsRepo.GetClassCapacity(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("CreateBooking: failed to get class capacity: %v", err)
		return nil, fmt.Errorf("%w: failed to get class capacity: %v", ErrInternal, err)
	}

	for i, slot := range slots {
		date, err := time.Parse(domain.DateFormat, slot.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slot date %q", ErrInvalidInput, slot.Date)
		}

		available, max := domain.SlotsForDate(availability, overrides, capacity, date)
		found := false
		for _, a := range available {
			if a.Time == slot.Time && a.InstructorID == slot.InstructorID {
				found = true
				break
			}
		}
		if !found {
			uc.logger.Warn("CreateBooking: no template slot at %s %s", slot.Date, slot.Time)
			return nil, ErrSessionNotFound
		}
		capacities[i] = max
	}

	return capacities, nil
}

// notifyAdmin пишет событие в ленту администратора
func (uc *UseCase) notifyAdmin(ctx context.Context, booking *domain.Booking, now time.Time) {
	n := &domain.AdminNotification{
		ID:        uuid.NewString(),
		Type:      domain.NotificationNewBooking,
		TargetID:  booking.ID,
		UserName:  booking.UserInfo.FullName(),
		Summary:   booking.Product.Name,
		Timestamp: now,
		Read:      false,
	}
	if err := uc.notificationRepo.CreateAdmin(ctx, n); err != nil {
		uc.logger.Error("CreateBooking: failed to create admin notification: %v", err)
	}
}

// sendPreBookingEmail отправляет письмо с инструкциями по оплате,
// если автоматизация включена. Ошибка письма не отменяет бронирование.
func (uc *UseCase) sendPreBookingEmail(ctx context.Context, booking *domain.Booking, now time.Time) {
	automation, err := uc.settingsRepo.GetAutomationSettings(ctx)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		automation = domain.DefaultAutomationSettings()
	} else if err != nil {
		uc.logger.Error("CreateBooking: failed to get automation settings: %v", err)
		return
	}

	if !automation.PreBookingConfirmation.Enabled {
		return
	}

	bank, err := uc.settingsRepo.GetBankDetails(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingNotFound) {
		uc.logger.Error("CreateBooking: failed to get bank details: %v", err)
		return
	}

	if err := uc.mailer.SendPreBookingConfirmation(ctx, booking, bank); err != nil {
		uc.logger.Error("CreateBooking: failed to send pre-booking email: %v", err)
		return
	}

	journal := &domain.ClientNotification{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		ClientName:  booking.UserInfo.FullName(),
		ClientEmail: booking.UserInfo.Email,
		Type:        domain.ClientPreBookingConfirmation,
		Channel:     "Email",
		Status:      "Sent",
		BookingCode: booking.BookingCode,
	}
	if err := uc.notificationRepo.CreateClient(ctx, journal); err != nil {
		uc.logger.Error("CreateBooking: failed to journal client notification: %v", err)
	}
}
