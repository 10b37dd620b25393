package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе почтового сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Недоступность почтового сервиса не должна блокировать создание бронирований.
	ErrServiceDegraded = errors.New("mailer unavailable: graceful degradation applied")
)
