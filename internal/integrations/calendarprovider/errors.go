package calendarprovider

import "errors"

var (
	// ErrCalendarNotLinked возвращается, когда у специалиста нет календаря у этого провайдера
	ErrCalendarNotLinked = errors.New("calendarprovider client: calendar not linked")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarprovider client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе провайдера
	ErrInvalidResponse = errors.New("calendarprovider client: invalid response")
)
