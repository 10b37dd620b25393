package generate_sessions

import "errors"

var (
	// ErrProductNotFound возвращается, когда продукт не найден
	ErrProductNotFound = errors.New("generate_sessions: product not found")

	// ErrNotIntroductoryClass возвращается, когда продукт не генерирует сессии
	ErrNotIntroductoryClass = errors.New("generate_sessions: product is not an introductory class")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_sessions: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_sessions: internal error")
)
