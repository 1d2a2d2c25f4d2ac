package holidays

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// HolidayRepository интерфейс репозитория праздников и нерабочих периодов
type HolidayRepository interface {
	Create(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	GetByID(ctx context.Context, id int64) (*domain.Holiday, error)
	List(ctx context.Context, from, to *time.Time) ([]*domain.Holiday, error)
	Update(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
