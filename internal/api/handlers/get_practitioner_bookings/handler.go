package get_practitioner_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	"github.com/praxisbook/scheduling-service/internal/service/bookings"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidParams         = "некорректные параметры запроса"
	msgForbidden             = "доступ запрещен"
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

// Handle GET /api/v1/practitioners/{practitionerId}/bookings
// Query params: from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем practitionerId из URL
	vars := mux.Vars(r)
	practitionerIDStr := vars["practitionerId"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/bookings - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /practitioners/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Календарь с контактами клиентов доступен только самому специалисту
	if userID != practitionerID {
		h.logger.Warn("GET /practitioners/{id}/bookings - Access denied: practitioner_id=%d, user_id=%d",
			practitionerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Получаем опциональные query параметры
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	statusStr := r.URL.Query().Get("status")
	includeInactiveStr := r.URL.Query().Get("includeInactive")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(practitionerID, fromStr, toStr, statusStr, includeInactiveStr)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetPractitionerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /practitioners/{id}/bookings - Invalid parameters: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /practitioners/{id}/bookings - Failed to get bookings: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/bookings - Bookings retrieved successfully: practitioner_id=%d, count=%d",
		practitionerID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
