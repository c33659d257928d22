package get_schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/internal/service/schedule/models"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgInvalidParams         = "некорректные параметры запроса"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/schedule
// Query params: from, to (опционально; исключения возвращаются только с периодом)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем practitionerId из URL
	vars := mux.Vars(r)
	practitionerIDStr := vars["practitionerId"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /practitioners/{id}/schedule - Invalid practitioner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	serviceReq := &models.GetScheduleRequest{
		PractitionerID: practitionerID,
	}

	// Период для исключений (опционально, оба параметра вместе)
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /practitioners/{id}/schedule - Invalid 'from' date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			h.logger.Warn("GET /practitioners/{id}/schedule - Invalid 'to' date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}

		serviceReq.From = from
		serviceReq.To = to
	}

	result, err := h.service.GetSchedule(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /practitioners/{id}/schedule - Failed to get schedule: practitioner_id=%d, error=%v",
			practitionerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /practitioners/{id}/schedule - Schedule retrieved successfully: practitioner_id=%d, rules=%d, overrides=%d",
		practitionerID, len(result.WeeklyRules), len(result.Overrides))
	handlers.RespondJSON(w, http.StatusOK, result)
}
