package get_calendar

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// CalendarResponse рабочие часы и шаг сетки слотов
type CalendarResponse struct {
	WorkingStart           string `json:"workingStart"`
	WorkingEnd             string `json:"workingEnd"`
	SlotGranularityMinutes int    `json:"slotGranularityMinutes"`
}

type Handler struct {
	response CalendarResponse
}

// NewHandler календарь неизменяем, ответ собирается один раз
func NewHandler(calendar *domain.Calendar) *Handler {
	return &Handler{
		response: CalendarResponse{
			WorkingStart:           calendar.WorkingStart().String(),
			WorkingEnd:             calendar.WorkingEnd().String(),
			SlotGranularityMinutes: calendar.SlotGranularityMinutes(),
		},
	}
}

// Handle GET /api/v1/public/calendar
func (h *Handler) Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.response)
}
