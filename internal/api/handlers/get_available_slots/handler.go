package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/praxisbook/scheduling-service/internal/api/handlers"
	"github.com/praxisbook/scheduling-service/internal/domain"
	getAvailableSlots "github.com/praxisbook/scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidPractitionerID = "некорректный ID специалиста"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingFrom           = "отсутствует обязательный параметр from"
	msgInvalidDateRange      = "некорректный диапазон дат"
	msgDateTooFar            = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/available-slots?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerID, err := strconv.ParseInt(vars["practitionerId"], 10, 64)
	if err != nil || practitionerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	fromStr := r.URL.Query().Get("from")
	if fromStr == "" {
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var to time.Time
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err = time.Parse(domain.DateFormat, toStr)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		PractitionerID: practitionerID,
		From:           from,
		To:             to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput),
			errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid request: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far: practitioner_id=%d", practitionerID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /available-slots - Failed: practitioner_id=%d, error=%v", practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
