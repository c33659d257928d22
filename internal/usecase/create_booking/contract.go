package create_booking

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// ListBlockingByDateRange внутри транзакции блокирует строки (FOR UPDATE)
	ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWeeklyRules(ctx context.Context, practitionerID int64) ([]*domain.WeeklyRule, error)
	GetOverrideByDate(ctx context.Context, practitionerID int64, date time.Time) (*domain.DateOverride, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
