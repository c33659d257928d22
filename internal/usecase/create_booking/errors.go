package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом или некорректной дате
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение maxBookingDaysAhead
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooSoonToBook возвращается, когда до начала слота меньше minBookingNoticeHours
	ErrTooSoonToBook = errors.New("booking start violates minimum notice period")

	// ErrOutsideAvailability возвращается, когда запрошенное время вне окон доступности
	ErrOutsideAvailability = errors.New("requested time is outside practitioner availability")

	// ErrSlotNoLongerAvailable возвращается при проигрыше гонки за слот:
	// между выдачей слотов и коммитом появилось пересекающееся бронирование
	ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
