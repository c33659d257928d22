package domain

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// BookingStatus represents the status of a client booking
type BookingStatus string

const (
	// StatusPending бронирование создано, но email клиента еще не подтвержден
	// Неподтвержденное бронирование ВСЁ РАВНО занимает слот: иначе два
	// неподтвержденных запроса могли бы получить одно и то же время
	StatusPending                 BookingStatus = "pending"
	StatusPendingVerified         BookingStatus = "pending_verified"
	StatusConfirmed               BookingStatus = "confirmed"
	StatusCancelledByClient       BookingStatus = "cancelled_by_client"
	StatusCancelledByPractitioner BookingStatus = "cancelled_by_practitioner"
)

// Booking represents a client-requested appointment in the system
type Booking struct {
	ID             int64
	PractitionerID int64
	ClientID       int64
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus

	// Denormalized client data for history
	ClientName  string
	ClientEmail string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the booking occupies its slot
func (b *Booking) IsBlocking() bool {
	return b.Status == StatusPending ||
		b.Status == StatusPendingVerified ||
		b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByPractitioner
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsBlocking()
}

// CanTransitionTo проверяет допустимость перехода статуса
// Переходы: pending -> pending_verified|confirmed|cancelled_*,
// pending_verified -> confirmed|cancelled_*, confirmed -> cancelled_*
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusPendingVerified || next == StatusConfirmed ||
			next == StatusCancelledByClient || next == StatusCancelledByPractitioner
	case StatusPendingVerified:
		return next == StatusConfirmed ||
			next == StatusCancelledByClient || next == StatusCancelledByPractitioner
	case StatusConfirmed:
		return next == StatusCancelledByClient || next == StatusCancelledByPractitioner
	default:
		return false
	}
}

// PractitionerBookingsFilter фильтр для получения бронирований практикующего специалиста
type PractitionerBookingsFilter struct {
	PractitionerID  int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
