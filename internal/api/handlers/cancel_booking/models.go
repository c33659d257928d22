package cancel_booking

import (
	"github.com/praxisbook/scheduling-service/internal/service/bookings/models"
	"github.com/praxisbook/scheduling-service/pkg/ptr"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса.
// Инициатор берется из аутентификации, а не из тела запроса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: ptr.Deref(r.CancellationReason),
	}
}
