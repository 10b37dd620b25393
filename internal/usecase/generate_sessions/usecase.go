package generate_sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
)

// UseCase use case для генерации сессий вводного класса
type UseCase struct {
	productRepo  ProductRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		productRepo:  productRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute разворачивает правила расписания продукта в конкретные сессии
// с живой занятостью. Занятость всегда пересчитывается по списку
// бронирований: хранимых счетчиков мест нет.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProductID <= 0 {
		return nil, fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}
	if req.GenerationLimitInDays < 0 {
		return nil, fmt.Errorf("%w: generationLimitInDays must not be negative", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// 1. Получаем продукт и проверяем его тип
	product, err := uc.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		uc.logger.Warn("GenerateSessions: product id=%d not found: %v", req.ProductID, err)
		return nil, ErrProductNotFound
	}
	if !product.IsIntroductoryClass() {
		return nil, ErrNotIntroductoryClass
	}

	// 2. Определяем горизонт генерации
	days := req.GenerationLimitInDays
	if days == 0 {
		days = domain.DefaultGenerationLimitInDays
	}
	from := now
	if req.From != nil {
		from = *req.From
	}

	// 3. Разворачиваем правила в сессии
	sessions := domain.GenerateSessions(product.SchedulingRules, product.Overrides, from, days)
	if len(sessions) == 0 {
		return &Response{ProductID: product.ID, Sessions: []SessionView{}}, nil
	}

	// 4. Загружаем бронирования затронутых дат
	bookings, err := uc.bookingRepo.ListBySlotDates(ctx, sessionDates(sessions))
	if err != nil {
		uc.logger.Error("GenerateSessions: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 5. Настройки сообщений о заполненности
	messages, err := uc.settingsRepo.GetCapacityMessages(ctx)
	if errors.Is(err, settingsRepo.ErrSettingNotFound) {
		messages = domain.DefaultCapacityMessages()
	} else if err != nil {
		uc.logger.Error("GenerateSessions: failed to get capacity messages: %v", err)
		return nil, fmt.Errorf("%w: failed to get capacity messages: %v", ErrInternal, err)
	}

	// 6. Обогащаем и фильтруем
	views := make([]SessionView, 0, len(sessions))
	for _, session := range sessions {
		if !req.IncludePast && uc.isPast(session, now) {
			continue
		}

		enriched := domain.EnrichSession(session, bookings)
		if !req.IncludeFull && enriched.IsFull() {
			continue
		}

		view := SessionView{EnrichedSession: enriched}
		if threshold, ok := messages.Classify(enriched.TotalBookingsCount, enriched.Capacity); ok {
			view.AvailabilityLevel = threshold.Level
			view.AvailabilityMessage = threshold.Message
		}
		views = append(views, view)
	}

	uc.logger.Info("GenerateSessions: product=%d, horizon=%dd, sessions=%d", product.ID, days, len(views))

	return &Response{ProductID: product.ID, Sessions: views}, nil
}

// isPast проверяет, что сессия уже началась к моменту now
func (uc *UseCase) isPast(session domain.Session, now time.Time) bool {
	dt, err := session.Slot().DateTime()
	if err != nil {
		return true
	}
	return !dt.After(now)
}

// sessionDates возвращает уникальные даты сессий
func sessionDates(sessions []domain.Session) []string {
	seen := make(map[string]struct{}, len(sessions))
	dates := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		dates = append(dates, s.Date)
	}
	return dates
}
