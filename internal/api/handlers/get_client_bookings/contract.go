package get_client_bookings

import (
	"context"

	"github.com/praxisbook/scheduling-service/internal/service/bookings/models"
)

type BookingService interface {
	GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
