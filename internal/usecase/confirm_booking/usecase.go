package confirm_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
	bookingRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/booking"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
)

// UseCase use case подтверждения бронирования клиентом (переход по ссылке из письма).
// Подтверждение меняет только статус: слот занят с момента создания
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, settingsRepo SettingsRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmBooking: booking=%d, client=%d", req.BookingID, req.ClientID)

	if req.BookingID <= 0 || req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: bookingID and clientID must be positive", ErrInvalidInput)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// Чужое бронирование не раскрываем: отвечаем как на отсутствующее
	if booking.ClientID != req.ClientID {
		uc.logger.Warn("ConfirmBooking: booking id=%d belongs to another client", req.BookingID)
		return nil, ErrBookingNotFound
	}

	// requires_approval оставляет бронирование на ручное подтверждение специалистом
	next := domain.StatusConfirmed
	settings, err := uc.settingsRepo.GetByPractitioner(ctx, booking.PractitionerID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("ConfirmBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings != nil && settings.RequiresApproval {
		next = domain.StatusPendingVerified
	}

	// Повторный переход по ссылке безвреден
	if booking.Status == next {
		return &Response{BookingID: booking.ID, Status: string(booking.Status)}, nil
	}

	if !booking.CanTransitionTo(next) {
		uc.logger.Warn("ConfirmBooking: invalid transition %s -> %s for booking id=%d",
			booking.Status, next, req.BookingID)
		return nil, ErrInvalidTransition
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, req.BookingID, next); err != nil {
		uc.logger.Error("ConfirmBooking: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmBooking: booking id=%d moved to %s", req.BookingID, next)

	return &Response{BookingID: booking.ID, Status: string(next)}, nil
}
