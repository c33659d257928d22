package set_date_override

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error)
	DeleteOverride(ctx context.Context, practitionerID int64, date time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
