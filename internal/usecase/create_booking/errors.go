package create_booking

import "errors"

var (
	// ErrProductNotFound возвращается, когда продукт не найден или не активен
	ErrProductNotFound = errors.New("create_booking: product not found")

	// ErrProductNotBookable возвращается, когда тип продукта нельзя бронировать напрямую
	ErrProductNotBookable = errors.New("create_booking: product type is not bookable")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть бронирование
	// класса на ту же дату и время
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking for this date and time")

	// ErrSessionFull возвращается, когда в сессии не осталось мест
	ErrSessionFull = errors.New("create_booking: session is full")

	// ErrSessionNotFound возвращается, когда слот указывает на несуществующую сессию
	ErrSessionNotFound = errors.New("create_booking: session does not exist on the schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
