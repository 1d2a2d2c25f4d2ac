package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/internal/infra/lock"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// CustomerResolver поиск или регистрация клиента и автомобиля по явным идентификаторам
type CustomerResolver interface {
	ResolveCustomer(ctx context.Context, id domain.CustomerIdentifier, details domain.CustomerDetails) (*domain.Customer, error)
	ResolveVehicle(ctx context.Context, id domain.VehicleIdentifier, details domain.VehicleDetails, ownerID *int64) (*domain.Vehicle, error)
}

// DurationResolver расчет суммарной длительности выбранных услуг
type DurationResolver interface {
	TotalDuration(ctx context.Context, vehicleMake, vehicleModel string, descriptions []string) (int, error)
}

// HolidayRepository интерфейс репозитория праздников
type HolidayRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Holiday, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ExistsOverlapping(ctx context.Context, date time.Time, start, end types.TimeString) (bool, error)
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка на дату записи, сужает конкуренцию до транзакции
type Locker interface {
	Acquire(ctx context.Context, key string) (lock.ReleaseFunc, error)
}

// Metrics счетчики use case
type Metrics interface {
	IncBookingCommitted()
	IncBookingConflict(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
