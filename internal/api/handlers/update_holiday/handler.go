package update_holiday

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
	"github.com/m04kA/SMC-AutoService/internal/service/holidays/models"
)

const (
	msgInvalidHolidayID   = "некорректный ID праздника"
	msgInvalidRequestBody = "некорректное тело запроса"
)

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

// Handle PUT /api/v1/admin/holidays/{holidayId}
// Полная замена: отсутствующие startTime/endTime сбрасываются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	holidayID, err := handlers.PathID(r, "holidayId")
	if err != nil {
		h.logger.Warn("PUT /admin/holidays/{id} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	var req models.HolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/holidays/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	holiday, err := h.service.Update(r.Context(), holidayID, &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "PUT /admin/holidays/{id}", err)
		return
	}

	h.logger.Info("PUT /admin/holidays/{id} - Holiday updated: holiday_id=%d", holidayID)
	handlers.RespondJSON(w, http.StatusOK, holiday)
}
