package get_available_slots

import (
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// Request модель запроса доступных слотов пакета занятий
type Request struct {
	Date        time.Time // Дата, на которую запрашиваются слоты
	IncludeFull bool      // Включать заполненные слоты (админский календарь)
	IncludePast bool      // Включать прошедшие слоты (админский календарь)
}

// SlotView слот недельного шаблона с занятостью и сообщением о заполненности
type SlotView struct {
	domain.EnrichedAvailableSlot
	AvailabilityLevel   domain.CapacityLevel // Уровень заполненности
	AvailabilityMessage string               // Текст для витрины
}

// Response модель ответа с доступными слотами на дату
type Response struct {
	Date  string     // Дата "YYYY-MM-DD"
	Slots []SlotView // Слоты в порядке шаблона
}
