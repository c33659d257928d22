package settings

import (
	"context"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error)
	Upsert(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
