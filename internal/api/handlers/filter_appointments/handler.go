package filter_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-AutoService/internal/api/handlers"
	"github.com/m04kA/SMC-AutoService/internal/service/appointments/models"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments
// Query params (все необязательные): startDate, endDate, status, vehicleId, chassisNo, customerName
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.FilterRequest{
		StartDate:     handlers.QueryParam(r, "startDate"),
		EndDate:       handlers.QueryParam(r, "endDate"),
		Status:        handlers.QueryParam(r, "status"),
		VehicleNumber: handlers.QueryParam(r, "vehicleId"),
		ChassisNumber: handlers.QueryParam(r, "chassisNo"),
		CustomerName:  handlers.QueryParam(r, "customerName"),
	}

	result, err := h.service.Filter(r.Context(), req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, "GET /admin/appointments", err)
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments filtered: count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
