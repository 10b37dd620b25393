package settings

import "errors"

var (
	// ErrSettingNotFound возвращается, когда настройка с таким ключом отсутствует.
	// Вызывающий код подставляет значение по умолчанию из domain.
	ErrSettingNotFound = errors.New("settings.repository: setting not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")

	// ErrMarshal возвращается при ошибке сериализации значения настройки
	ErrMarshal = errors.New("settings.repository: failed to marshal value")
)
