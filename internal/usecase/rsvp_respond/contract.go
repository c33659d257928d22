package rsvp_respond

import (
	"context"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	UpdateRSVP(ctx context.Context, id int64, rsvpStatus domain.RSVPStatus,
		proposedDate *time.Time, proposedStart, proposedEnd *types.TimeString, message *string) error
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
