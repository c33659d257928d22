package set_date_override

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	"github.com/praxisbook/scheduling-service/internal/domain"
	setDateOverride "github.com/praxisbook/scheduling-service/internal/usecase/set_date_override"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidOverride    = "некорректные данные исключения"
	msgOverrideNotFound   = "исключение на дату не найдено"
)

type Handler struct {
	useCase SetDateOverrideUseCase
	logger  Logger
}

func NewHandler(useCase SetDateOverrideUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/practitioners/me/schedule/overrides
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Специалист управляет только собственными исключениями
	practitionerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /practitioners/me/schedule/overrides - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetDateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /practitioners/me/schedule/overrides - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(practitionerID)
	if err != nil {
		h.logger.Warn("PUT /practitioners/me/schedule/overrides - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, setDateOverride.ErrInvalidInput):
			h.logger.Warn("PUT /practitioners/me/schedule/overrides - Invalid input: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		default:
			h.logger.Error("PUT /practitioners/me/schedule/overrides - Failed to set override: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /practitioners/me/schedule/overrides - Override saved: practitioner_id=%d, date=%s, available=%t",
		practitionerID, result.Date.Format(domain.DateFormat), result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleDelete DELETE /api/v1/practitioners/me/schedule/overrides/{date}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	practitionerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /practitioners/me/schedule/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем date из URL
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("DELETE /practitioners/me/schedule/overrides/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	err = h.useCase.Delete(r.Context(), &setDateOverride.DeleteRequest{
		PractitionerID: practitionerID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, setDateOverride.ErrOverrideNotFound):
			h.logger.Warn("DELETE /practitioners/me/schedule/overrides/{date} - Override not found: practitioner_id=%d, date=%s",
				practitionerID, dateStr)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		default:
			h.logger.Error("DELETE /practitioners/me/schedule/overrides/{date} - Failed to delete override: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /practitioners/me/schedule/overrides/{date} - Override deleted: practitioner_id=%d, date=%s",
		practitionerID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
