package trigger_reminders

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("trigger_reminders: internal error")
)
