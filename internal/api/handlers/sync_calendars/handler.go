package sync_calendars

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	syncBusyTimes "github.com/praxisbook/scheduling-service/internal/usecase/sync_busy_times"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgInvalidSyncRequest    = "некорректный запрос синхронизации"
)

type Handler struct {
	useCase SyncBusyTimesUseCase
	logger  Logger
}

func NewHandler(useCase SyncBusyTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/v1/practitioners/{practitionerId}/calendar-sync
// Запускается планировщиком; доступ закрыт сервисным токеном
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем practitionerId из URL
	vars := mux.Vars(r)
	practitionerIDStr := vars["practitionerId"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /internal/calendar-sync - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &syncBusyTimes.Request{
		PractitionerID: practitionerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, syncBusyTimes.ErrInvalidInput):
			h.logger.Warn("POST /internal/calendar-sync - Invalid input: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidSyncRequest)

		default:
			h.logger.Error("POST /internal/calendar-sync - Sync failed: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/calendar-sync - Sync finished: practitioner_id=%d, providers=%d",
		practitionerID, len(result.Results))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
