package create_booking

import (
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ProductID   int64               // ID продукта из каталога
	Slots       []domain.TimeSlot   // Выбранные слоты (пусто для подписок)
	UserInfo    domain.UserInfo     // Контактные данные клиента
	Price       float64             // Цена на момент бронирования
	BookingMode *domain.BookingMode // Режим пакета занятий (flexible | monthly)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          string             // ID созданного бронирования
	BookingCode string             // Публичный код для клиента
	ProductID   int64              // ID продукта
	ProductType domain.ProductType // Тип продукта
	ProductName string             // Название продукта
	Slots       []domain.TimeSlot  // Слоты бронирования в хронологическом порядке
	UserInfo    domain.UserInfo    // Контактные данные клиента
	Price       float64            // Цена
	IsPaid      bool               // Всегда false при создании
	ExpiryDate  *time.Time         // Окно записи пакета занятий
	CreatedAt   time.Time          // Время создания
}
