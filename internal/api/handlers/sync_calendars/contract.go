package sync_calendars

import (
	"context"

	syncBusyTimes "github.com/praxisbook/scheduling-service/internal/usecase/sync_busy_times"
)

type SyncBusyTimesUseCase interface {
	Execute(ctx context.Context, req *syncBusyTimes.Request) (*syncBusyTimes.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
