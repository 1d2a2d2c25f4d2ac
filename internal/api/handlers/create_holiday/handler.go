package create_holiday

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
	"github.com/m04kA/SMC-AutoService/internal/service/holidays/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/admin/holidays
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.HolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	holiday, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "POST /admin/holidays", err)
		return
	}

	h.logger.Info("POST /admin/holidays - Holiday created: holiday_id=%d, date=%s", holiday.ID, holiday.Date)
	handlers.RespondJSON(w, http.StatusCreated, holiday)
}
