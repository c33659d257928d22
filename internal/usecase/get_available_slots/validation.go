package get_available_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() {
		return fmt.Errorf("%w: from date is required", ErrInvalidInput)
	}

	if !req.To.IsZero() && req.To.Before(req.From) {
		return fmt.Errorf("%w: to date must not be before from date", ErrInvalidInput)
	}

	return nil
}

// validateDateRange проверяет диапазон против окна бронирования специалиста.
// Диапазон целиком в прошлом или целиком за пределом maxBookingDaysAhead - ошибка;
// частично выходящие за границы даты отбрасываются в цикле генерации
func validateDateRange(from, to, today time.Time, maxBookingDaysAhead int) error {
	if to.Before(today) {
		return ErrInvalidDate
	}

	if maxBookingDaysAhead > 0 {
		maxDate := today.AddDate(0, 0, maxBookingDaysAhead)
		if from.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxBookingDaysAhead)
		}
	}

	return nil
}
