package create_session

import (
	"errors"
	"net/http"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	createSession "github.com/praxisbook/scheduling-service/internal/usecase/create_session"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidSessionDate = "некорректная дата сессии"
	msgSlotNotAvailable   = "выбранное время конфликтует с существующими записями"
	msgInvalidSession     = "некорректные данные сессии"
)

type Handler struct {
	useCase CreateSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Сессию создает специалист в своем календаре
	practitionerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(practitionerID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSession.ErrSlotNoLongerAvailable):
			h.logger.Warn("POST /sessions - Slot conflict: practitioner_id=%d, client_id=%d",
				practitionerID, req.ClientID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createSession.ErrInvalidDate):
			h.logger.Warn("POST /sessions - Invalid session date: practitioner_id=%d", practitionerID)
			handlers.RespondBadRequest(w, msgInvalidSessionDate)

		case errors.Is(err, createSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidSession)

		default:
			h.logger.Error("POST /sessions - Failed to create session: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%d, practitioner_id=%d, client_id=%d",
		result.ID, practitionerID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
