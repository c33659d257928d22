package get_settings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем practitionerId из URL
	vars := mux.Vars(r)
	practitionerIDStr := vars["practitionerId"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/settings - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	// Сервис возвращает умолчания, если специалист настройки не сохранял
	result, err := h.service.Get(r.Context(), practitionerID)
	if err != nil {
		h.logger.Error("GET /practitioners/{id}/settings - Failed to get settings: practitioner_id=%d, error=%v",
			practitionerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /practitioners/{id}/settings - Settings retrieved successfully: practitioner_id=%d",
		practitionerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
