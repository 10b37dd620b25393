package generate_sessions

import (
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// Request модель запроса на генерацию сессий вводного класса
type Request struct {
	ProductID             int64      // ID продукта вводного класса
	GenerationLimitInDays int        // Горизонт генерации; 0 — значение по умолчанию
	From                  *time.Time // Начало горизонта; nil — сегодня
	IncludeFull           bool       // Включать заполненные сессии (админский календарь)
	IncludePast           bool       // Включать прошедшие сессии (админский календарь)
}

// SessionView сессия с занятостью и сообщением о заполненности
type SessionView struct {
	domain.EnrichedSession
	AvailabilityLevel   domain.CapacityLevel // Уровень заполненности
	AvailabilityMessage string               // Текст для витрины
}

// Response модель ответа со сгенерированными сессиями
type Response struct {
	ProductID int64         // ID продукта
	Sessions  []SessionView // Сессии в хронологическом порядке
}
