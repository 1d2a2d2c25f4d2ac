package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
)

const (
	msgMissingDate = "дата обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/public/appointment-slots
// Query params: date (YYYY-MM-DD), make, model, service (повторяется)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("date") == "" {
		h.logger.Warn("GET /public/appointment-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(query)
	if err != nil {
		h.logger.Warn("GET /public/appointment-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /public/appointment-slots", err)
		return
	}

	h.logger.Info("GET /public/appointment-slots - Slots calculated: date=%s, duration=%d, slots_count=%d",
		query.Get("date"), result.DurationMinutes, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
