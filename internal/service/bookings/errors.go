package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotNotFound возвращается, когда у бронирования нет такого слота
	ErrSlotNotFound = errors.New("slot not found in booking")

	// ErrDuplicateSlot возвращается, когда перенос создает два слота
	// на одну дату и время
	ErrDuplicateSlot = errors.New("duplicate slot for this date and time")

	// ErrInvalidAttendance возвращается при неизвестном статусе посещаемости
	ErrInvalidAttendance = errors.New("invalid attendance status")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
