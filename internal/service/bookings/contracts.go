package bookings

import (
	"context"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
