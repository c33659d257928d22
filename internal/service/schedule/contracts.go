package schedule

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListWeeklyRules(ctx context.Context, practitionerID int64) ([]*domain.WeeklyRule, error)
	ListOverridesByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.DateOverride, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
