package update_weekly_schedule

import (
	"context"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// ReplaceWeeklyRules должен вызываться внутри транзакции
	ReplaceWeeklyRules(ctx context.Context, practitionerID int64, rules []*domain.WeeklyRule) error
	ListWeeklyRules(ctx context.Context, practitionerID int64) ([]*domain.WeeklyRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
