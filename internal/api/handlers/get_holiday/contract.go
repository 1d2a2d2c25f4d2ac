package get_holiday

import (
	"context"

	"github.com/m04kA/SMC-AutoService/internal/service/holidays/models"
)

type HolidayService interface {
	GetByID(ctx context.Context, id int64) (*models.HolidayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
