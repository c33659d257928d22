package create_booking

import (
	"errors"
	"net/http"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	createBooking "github.com/praxisbook/scheduling-service/internal/usecase/create_booking"
)

const (
	msgMissingUserID          = "отсутствует идентификатор пользователя"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateOrTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable       = "выбранный временной слот недоступен, обновите список слотов"
	msgOutsideAvailability    = "выбранное время вне расписания специалиста"
	msgInvalidBookingDate     = "некорректная дата бронирования"
	msgDateTooFar             = "дата бронирования слишком далеко в будущем"
	msgTooSoonToBook          = "до начала слота осталось меньше минимального времени для бронирования"
	msgInvalidBookingRequest  = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /bookings - Slot no longer available: client_id=%d, practitioner_id=%d",
				clientID, req.PractitionerID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: client_id=%d, practitioner_id=%d",
				clientID, req.PractitionerID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooSoonToBook):
			h.logger.Warn("POST /bookings - Too soon to book: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgTooSoonToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingRequest)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: client_id=%d, practitioner_id=%d, error=%v",
				clientID, req.PractitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, practitioner_id=%d",
		result.ID, clientID, req.PractitionerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
