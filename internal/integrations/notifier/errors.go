package notifier

import "errors"

var (
	// ErrDispatch возвращается, когда сервис уведомлений не смог доставить сообщение
	// Для батча напоминаний эта ошибка не фатальна: элемент остается "due"
	ErrDispatch = errors.New("notifier client: dispatch failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("notifier client: invalid response")
)
