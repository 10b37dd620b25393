package inquiries

import "errors"

var (
	// ErrInquiryNotFound возвращается, когда запрос не найден
	ErrInquiryNotFound = errors.New("inquiry not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
