package confirm_booking

import (
	confirmBooking "github.com/praxisbook/scheduling-service/internal/usecase/confirm_booking"
)

// ConfirmBookingResponse HTTP response model
type ConfirmBookingResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmBooking.Response) *ConfirmBookingResponse {
	return &ConfirmBookingResponse{
		BookingID: resp.BookingID,
		Status:    resp.Status,
	}
}
