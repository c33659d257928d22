package resolve_reschedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoProposal возвращается, когда у сессии нет предложения переноса
	ErrNoProposal = errors.New("session has no reschedule proposal")

	// ErrSlotNoLongerAvailable возвращается, когда предложенное время
	// уже занято другим бронированием или сессией
	ErrSlotNoLongerAvailable = errors.New("slot is no longer available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
