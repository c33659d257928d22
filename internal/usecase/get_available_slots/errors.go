package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxBookingDaysAhead
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
