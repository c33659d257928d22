package send_reminders

import "errors"

var (
	// ErrInternal возвращается при ошибке, не позволившей запустить батч
	// (ошибки отдельных элементов в ErrInternal не попадают)
	ErrInternal = errors.New("usecase: internal error")
)
