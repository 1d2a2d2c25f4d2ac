package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

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
	// ListActiveByDate возвращает неотмененные записи на дату
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
}

// Metrics счетчики use case
type Metrics interface {
	IncSlotQuery()
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
