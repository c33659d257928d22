package run_reminders

import (
	"net/http"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
)

type Handler struct {
	useCase SendRemindersUseCase
	logger  Logger
}

func NewHandler(useCase SendRemindersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/v1/reminders/run
// Запускается планировщиком; доступ закрыт сервисным токеном
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/reminders/run - Batch failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	total := 0
	for _, count := range result.Sent {
		total += count
	}

	h.logger.Info("POST /internal/reminders/run - Batch finished: sent=%d, errors=%d",
		total, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
