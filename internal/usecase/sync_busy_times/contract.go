package sync_busy_times

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/internal/integrations/calendarprovider"
)

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	Name() string
	FetchBusy(ctx context.Context, practitionerID int64, from, to time.Time) ([]calendarprovider.BusyPeriod, error)
}

// BusyRepository интерфейс кэша занятых интервалов
type BusyRepository interface {
	// ReplaceForProvider должен вызываться внутри транзакции
	ReplaceForProvider(ctx context.Context, practitionerID int64, provider string, intervals []*domain.BusyInterval, syncedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector интерфейс для учета синхронизаций
type MetricsCollector interface {
	IncBusySync(provider string, success bool)
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
