package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
	bookingRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/booking"
	"github.com/praxisbook/scheduling-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту бронирования и его специалисту
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.ClientID != userID && booking.PractitionerID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPractitionerBookings получает бронирования специалиста с фильтрацией
// по периоду, статусу и включению отмененных
func (s *Service) GetPractitionerBookings(ctx context.Context, req *models.GetPractitionerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPractitionerBookings: fetching bookings for practitioner=%d", req.PractitionerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPractitionerBookings: invalid filter for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPractitionerBookings: repository error for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: GetPractitionerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPractitionerBookings: successfully fetched %d bookings for practitioner=%d",
		len(bookings), req.PractitionerID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент получает статус cancelled_by_client, специалист - cancelled_by_practitioner
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	var cancelStatus domain.BookingStatus
	switch req.UserID {
	case booking.ClientID:
		cancelStatus = domain.StatusCancelledByClient
	case booking.PractitionerID:
		cancelStatus = domain.StatusCancelledByPractitioner
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}
