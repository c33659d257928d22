package confirm_booking

import (
	"context"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
