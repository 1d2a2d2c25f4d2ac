package get_holiday

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
)

const msgInvalidHolidayID = "некорректный ID праздника"

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

// Handle GET /api/v1/admin/holidays/{holidayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	holidayID, err := handlers.PathID(r, "holidayId")
	if err != nil {
		h.logger.Warn("GET /admin/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	holiday, err := h.service.GetByID(r.Context(), holidayID)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /admin/holidays/{id}", err)
		return
	}

	h.logger.Info("GET /admin/holidays/{id} - Holiday retrieved: holiday_id=%d", holidayID)
	handlers.RespondJSON(w, http.StatusOK, holiday)
}
