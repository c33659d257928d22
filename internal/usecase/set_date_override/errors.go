package set_date_override

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных.
	// Доступное исключение без обоих времен - ошибка, а не умолчание
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOverrideNotFound возвращается при удалении несуществующего исключения
	ErrOverrideNotFound = errors.New("date override not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
