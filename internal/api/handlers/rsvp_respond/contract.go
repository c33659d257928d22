package rsvp_respond

import (
	"context"

	rsvpRespond "github.com/praxisbook/scheduling-service/internal/usecase/rsvp_respond"
)

type RSVPRespondUseCase interface {
	Execute(ctx context.Context, req *rsvpRespond.Request) (*rsvpRespond.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
