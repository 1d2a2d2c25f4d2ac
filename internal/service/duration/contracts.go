package duration

import (
	"context"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// ServiceFeeRepository интерфейс прайса услуг
type ServiceFeeRepository interface {
	GetByDescription(ctx context.Context, description, vehicleMake, vehicleModel string) (*domain.ServiceFee, error)
	ListByModel(ctx context.Context, vehicleMake, vehicleModel string) ([]*domain.ServiceFee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
