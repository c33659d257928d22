package create_booking

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.ClientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
		return fmt.Errorf("%w: invalid clientEmail", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateBookingWindow проверяет дату и время против окна бронирования:
// не в прошлом, не дальше maxBookingDaysAhead, не раньше now + minBookingNotice
func validateBookingWindow(date time.Time, start time.Time, now time.Time, settings *domain.BookingSettings) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	if settings.HasAdvanceBookingLimit() {
		maxDate := today.AddDate(0, 0, settings.MaxBookingDaysAhead)
		if dateOnly.After(maxDate) {
			return fmt.Errorf("%w: can only book %d days in advance",
				ErrDateTooFarInFuture, settings.MaxBookingDaysAhead)
		}
	}

	minStart := now.Add(time.Duration(settings.MinBookingNoticeHours) * time.Hour)
	if start.Before(minStart) {
		return fmt.Errorf("%w: booking requires %d hours notice",
			ErrTooSoonToBook, settings.MinBookingNoticeHours)
	}

	return nil
}
