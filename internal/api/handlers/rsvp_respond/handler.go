package rsvp_respond

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	rsvpRespond "github.com/praxisbook/scheduling-service/internal/usecase/rsvp_respond"
)

const (
	msgInvalidSessionID   = "некорректный ID сессии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSessionNotFound    = "сессия не найдена"
	msgSessionNotActive   = "сессия не принимает ответы на приглашение"
	msgInvalidRSVP        = "некорректный ответ на приглашение"
)

type Handler struct {
	useCase RSVPRespondUseCase
	logger  Logger
}

func NewHandler(useCase RSVPRespondUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/rsvp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем sessionId из URL
	vars := mux.Vars(r)
	sessionIDStr := vars["sessionId"]

	sessionID, err := strconv.ParseInt(sessionIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/rsvp - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Отвечает клиент, приглашенный на сессию
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/rsvp - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RSVPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/rsvp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID, clientID)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/rsvp - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rsvpRespond.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/rsvp - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, rsvpRespond.ErrSessionNotScheduled):
			h.logger.Warn("POST /sessions/{id}/rsvp - Session not scheduled: session_id=%d", sessionID)
			handlers.RespondConflict(w, msgSessionNotActive)

		case errors.Is(err, rsvpRespond.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/rsvp - Invalid input: session_id=%d, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidRSVP)

		default:
			h.logger.Error("POST /sessions/{id}/rsvp - Failed to process RSVP: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/rsvp - RSVP recorded: session_id=%d, client_id=%d, status=%s",
		sessionID, clientID, result.RSVPStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
