package create_booking

import (
	"fmt"
	"net/mail"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.UserInfo.FirstName == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}

	if req.UserInfo.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.UserInfo.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	if len(req.Slots) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: too many slots, max %d", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	for _, slot := range req.Slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// Два слота на одну дату и время внутри одного запроса
	if domain.HasDuplicateSlots(req.Slots) {
		return fmt.Errorf("%w: request contains duplicate slots", ErrInvalidInput)
	}

	if req.BookingMode != nil && *req.BookingMode != domain.ModeFlexible && *req.BookingMode != domain.ModeMonthly {
		return fmt.Errorf("%w: unknown booking mode %q", ErrInvalidInput, *req.BookingMode)
	}

	return nil
}

// validateProductBookable проверяет, что продукт активен и его тип можно бронировать
func validateProductBookable(product *domain.Product, slots []domain.TimeSlot) error {
	if !product.IsActive {
		return ErrProductNotFound
	}

	bookable := false
	for _, t := range domain.BookableProductTypes {
		if product.Type == t {
			bookable = true
			break
		}
	}
	if !bookable {
		return ErrProductNotBookable
	}

	// Подписка на свободную лепку не несет слотов, классы без слотов не бронируются
	if product.Type.HasSlotConflicts() && len(slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}

	return nil
}

// findDuplicateSlot ищет слот, на который у клиента уже есть бронирование класса.
// Конфликт определяется по (дата, время): клиент не может быть на двух занятиях
// одновременно, кто бы их ни вел. Сравниваются только типы продуктов с занятиями.
func findDuplicateSlot(existing []*domain.Booking, slots []domain.TimeSlot) *domain.TimeSlot {
	for _, b := range existing {
		if !b.ProductType.HasSlotConflicts() {
			continue
		}
		for _, have := range b.Slots {
			for i, want := range slots {
				if have.SameDateTime(want) {
					return &slots[i]
				}
			}
		}
	}
	return nil
}

// slotDates возвращает уникальные даты слотов запроса
func slotDates(slots []domain.TimeSlot) []string {
	seen := make(map[string]struct{}, len(slots))
	dates := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		dates = append(dates, s.Date)
	}
	return dates
}
