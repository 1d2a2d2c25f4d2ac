package customers

import (
	"context"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	GetByNIC(ctx context.Context, nic string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByNumber(ctx context.Context, vehicleNumber string) (*domain.Vehicle, error)
	GetByChassis(ctx context.Context, chassisNo string) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
