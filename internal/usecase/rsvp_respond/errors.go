package rsvp_respond

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotScheduled возвращается при ответе на завершенную
	// или отмененную сессию
	ErrSessionNotScheduled = errors.New("session is not scheduled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
