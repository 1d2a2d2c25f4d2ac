package filter_appointments

import (
	"context"

	"github.com/m04kA/SMC-AutoService/internal/service/appointments/models"
)

type AppointmentService interface {
	Filter(ctx context.Context, req *models.FilterRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
