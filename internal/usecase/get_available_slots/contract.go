package get_available_slots

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListBlockingByDateRange получает занятые интервалы из активных бронирований
	ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// ListBlockingByDateRange получает занятые интервалы из запланированных сессий
	ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWeeklyRules(ctx context.Context, practitionerID int64) ([]*domain.WeeklyRule, error)
	ListOverridesByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.DateOverride, error)
}

// BusyRepository интерфейс кэша занятых интервалов внешних календарей
type BusyRepository interface {
	ListByPractitionerAndRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BusyInterval, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error)
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
