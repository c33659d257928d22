package confirm_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	confirmBooking "github.com/praxisbook/scheduling-service/internal/usecase/confirm_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "бронирование не найдено"
	msgInvalidTransition = "бронирование нельзя подтвердить в текущем статусе"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/confirm - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{
		BookingID: bookingID,
		ClientID:  clientID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/confirm - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("POST /bookings/{id}/confirm - Failed to confirm booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm - Booking confirmed: booking_id=%d, status=%s",
		result.BookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
