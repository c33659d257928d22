package sync_busy_times

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	// (сбой отдельного провайдера ошибкой usecase не является)
	ErrInternal = errors.New("usecase: internal error")
)
