package update_weekly_schedule

import (
	"errors"
	"net/http"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	updateWeeklySchedule "github.com/praxisbook/scheduling-service/internal/usecase/update_weekly_schedule"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgOverlappingRules   = "правила расписания пересекаются"
	msgInvalidRules       = "некорректные правила расписания"
)

type Handler struct {
	useCase UpdateWeeklyScheduleUseCase
	logger  Logger
}

func NewHandler(useCase UpdateWeeklyScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/practitioners/me/schedule/weekly
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Специалист редактирует только собственное расписание
	practitionerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /practitioners/me/schedule/weekly - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateWeeklyScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /practitioners/me/schedule/weekly - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(practitionerID)
	if err != nil {
		h.logger.Warn("PUT /practitioners/me/schedule/weekly - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateWeeklySchedule.ErrOverlappingRules):
			h.logger.Warn("PUT /practitioners/me/schedule/weekly - Overlapping rules: practitioner_id=%d",
				practitionerID)
			handlers.RespondBadRequest(w, msgOverlappingRules)

		case errors.Is(err, updateWeeklySchedule.ErrInvalidInput):
			h.logger.Warn("PUT /practitioners/me/schedule/weekly - Invalid input: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		default:
			h.logger.Error("PUT /practitioners/me/schedule/weekly - Failed to update schedule: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /practitioners/me/schedule/weekly - Schedule updated successfully: practitioner_id=%d, rules=%d",
		practitionerID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
