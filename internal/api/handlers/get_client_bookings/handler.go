package get_client_bookings

import (
	"errors"
	"net/http"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	"github.com/praxisbook/scheduling-service/internal/service/bookings"
	"github.com/praxisbook/scheduling-service/internal/service/bookings/models"
	"github.com/praxisbook/scheduling-service/pkg/ptr"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidStatus = "некорректный статус бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/me/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Клиент видит только собственную историю
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/me/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем status из query параметров (опционально)
	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = ptr.Ptr(status)
	}

	// Формируем запрос к сервису
	serviceReq := &models.GetClientBookingsRequest{
		ClientID: clientID,
		Status:   statusPtr,
	}

	result, err := h.service.GetClientBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /clients/me/bookings - Invalid status: client_id=%d, status=%s",
				clientID, status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/me/bookings - Failed to get bookings: client_id=%d, error=%v",
				clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/me/bookings - Bookings retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
