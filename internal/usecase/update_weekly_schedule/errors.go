package update_weekly_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrOverlappingRules возвращается, когда правила одного дня пересекаются.
	// Инвариант обеспечивается на сервере: генератор слотов пересечения не склеивает
	ErrOverlappingRules = errors.New("weekly rules overlap")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
