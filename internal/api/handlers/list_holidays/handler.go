package list_holidays

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

type Handler struct {
	service HolidayService
	logger  Logger
}

func NewHandler(service HolidayService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/public/holidays и GET /api/v1/admin/holidays
// Query params: from, to (необязательные, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET %s - Invalid date: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET "+r.URL.Path, err)
		return
	}

	h.logger.Info("GET %s - Holidays retrieved: count=%d", r.URL.Path, len(result.Holidays))
	handlers.RespondJSON(w, http.StatusOK, result)
}
