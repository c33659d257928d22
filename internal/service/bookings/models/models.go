package models

import (
	"errors"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
// UserID - инициатор: клиент или специалист, которому принадлежит бронирование
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetClientBookingsRequest запрос на получение бронирований клиента
type GetClientBookingsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetPractitionerBookingsRequest запрос на получение бронирований специалиста
type GetPractitionerBookingsRequest struct {
	PractitionerID  int64      `json:"practitionerId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPractitionerBookingsRequest) ToDomainFilter() (domain.PractitionerBookingsFilter, error) {
	filter := domain.PractitionerBookingsFilter{
		PractitionerID:  r.PractitionerID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64  `json:"id"`
	PractitionerID int64  `json:"practitionerId"`
	ClientID       int64  `json:"clientId"`
	BookingDate    string `json:"bookingDate"` // "2025-10-15"
	StartTime      string `json:"startTime"`   // "10:00"
	EndTime        string `json:"endTime"`
	Status         string `json:"status"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в response
func FromDomainBooking(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 booking.ID,
		PractitionerID:     booking.PractitionerID,
		ClientID:           booking.ClientID,
		BookingDate:        booking.BookingDate.Format(domain.DateFormat),
		StartTime:          booking.StartTime.String(),
		EndTime:            booking.EndTime.String(),
		Status:             string(booking.Status),
		ClientName:         booking.ClientName,
		ClientEmail:        booking.ClientEmail,
		Notes:              booking.Notes,
		CancellationReason: booking.CancellationReason,
		CancelledAt:        booking.CancelledAt,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, booking := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(booking))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusPendingVerified,
		domain.StatusConfirmed,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByPractitioner:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
