package resolve_reschedule

import (
	"context"

	resolveReschedule "github.com/praxisbook/scheduling-service/internal/usecase/resolve_reschedule"
)

type ResolveRescheduleUseCase interface {
	Execute(ctx context.Context, req *resolveReschedule.Request) (*resolveReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
