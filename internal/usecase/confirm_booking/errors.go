package confirm_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition возвращается, когда бронирование нельзя подтвердить
	// из текущего статуса (например, уже отменено)
	ErrInvalidTransition = errors.New("booking cannot be confirmed from its current status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
