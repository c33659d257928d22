package set_date_override

import (
	"context"

	setDateOverride "github.com/praxisbook/scheduling-service/internal/usecase/set_date_override"
)

type SetDateOverrideUseCase interface {
	Execute(ctx context.Context, req *setDateOverride.Request) (*setDateOverride.Response, error)
	Delete(ctx context.Context, req *setDateOverride.DeleteRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
