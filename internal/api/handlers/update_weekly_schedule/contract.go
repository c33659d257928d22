package update_weekly_schedule

import (
	"context"

	updateWeeklySchedule "github.com/praxisbook/scheduling-service/internal/usecase/update_weekly_schedule"
)

type UpdateWeeklyScheduleUseCase interface {
	Execute(ctx context.Context, req *updateWeeklySchedule.Request) (*updateWeeklySchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
