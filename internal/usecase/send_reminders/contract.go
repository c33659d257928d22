package send_reminders

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	// ListUpcomingScheduled возвращает запланированные сессии с началом в [from, to]
	ListUpcomingScheduled(ctx context.Context, from, to time.Time) ([]*domain.Session, error)
	// StampReminder отмечает отправку; возвращает ErrReminderAlreadyStamped,
	// если отметка уже стоит (параллельный запуск батча)
	StampReminder(ctx context.Context, id int64, kind domain.ReminderKind, sentAt time.Time) error
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MetricsCollector интерфейс для учета обработанных напоминаний
type MetricsCollector interface {
	IncReminderProcessed(kind string, success bool)
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
