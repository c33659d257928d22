package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrReminderAlreadyStamped возвращается, когда отметка отправки уже установлена
	// Защита от двойной отправки при параллельных запусках батча
	ErrReminderAlreadyStamped = errors.New("session.repository: reminder already stamped")

	// ErrUnknownReminderKind возвращается при неизвестном типе напоминания
	ErrUnknownReminderKind = errors.New("session.repository: unknown reminder kind")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
