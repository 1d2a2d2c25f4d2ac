package delete_holiday

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

// Handle DELETE /api/v1/admin/holidays/{holidayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	holidayID, err := handlers.PathID(r, "holidayId")
	if err != nil {
		h.logger.Warn("DELETE /admin/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	if err := h.service.Delete(r.Context(), holidayID); err != nil {
		handlers.RespondFailure(w, h.logger, "DELETE /admin/holidays/{id}", err)
		return
	}

	h.logger.Info("DELETE /admin/holidays/{id} - Holiday deleted: holiday_id=%d", holidayID)
	w.WriteHeader(http.StatusNoContent)
}
