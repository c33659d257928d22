package resolve_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	resolveReschedule "github.com/praxisbook/scheduling-service/internal/usecase/resolve_reschedule"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена"
	msgNoProposal         = "у сессии нет предложения о переносе"
	msgSlotNotAvailable   = "предложенное время конфликтует с существующими записями"
)

type Handler struct {
	useCase ResolveRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase ResolveRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/reschedule/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/reschedule/resolve - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Решение принимает специалист, владеющий сессией
	practitionerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/reschedule/resolve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ResolveRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/reschedule/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &resolveReschedule.Request{
		SessionID:      sessionID,
		PractitionerID: practitionerID,
		Accept:         req.Accept,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveReschedule.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/reschedule/resolve - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, resolveReschedule.ErrNoProposal):
			h.logger.Warn("POST /sessions/{id}/reschedule/resolve - No proposal: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgNoProposal)

		case errors.Is(err, resolveReschedule.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /sessions/{id}/reschedule/resolve - Proposed slot conflict: session_id=%d",
				sessionID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /sessions/{id}/reschedule/resolve - Failed to resolve: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/reschedule/resolve - Resolved: session_id=%d, accept=%t, status=%s",
		sessionID, req.Accept, result.RSVPStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
