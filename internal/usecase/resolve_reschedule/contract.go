package resolve_reschedule

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	// ListBlockingByDateRange внутри транзакции блокирует строки (FOR UPDATE)
	ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error)
	ApplyReschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error
	UpdateRSVP(ctx context.Context, id int64, rsvpStatus domain.RSVPStatus,
		proposedDate *time.Time, proposedStart, proposedEnd *types.TimeString, message *string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
