package update_settings

import (
	"errors"
	"net/http"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	"github.com/praxisbook/scheduling-service/internal/service/settings"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки бронирования"
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

// Handle PUT /api/v1/practitioners/me/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Специалист редактирует только собственные настройки
	practitionerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /practitioners/me/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /practitioners/me/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(practitionerID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /practitioners/me/settings - Invalid settings: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /practitioners/me/settings - Failed to update settings: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /practitioners/me/settings - Settings updated successfully: practitioner_id=%d",
		practitionerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
