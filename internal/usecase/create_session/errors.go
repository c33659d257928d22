package create_session

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("invalid session date")

	// ErrSlotNoLongerAvailable возвращается, когда время пересекается
	// с существующим бронированием или сессией
	ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
