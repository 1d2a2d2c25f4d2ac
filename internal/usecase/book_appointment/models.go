package book_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// Request модель запроса на запись
type Request struct {
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала, например "10:00"

	Vehicle         domain.VehicleIdentifier
	VehicleDetails  domain.VehicleDetails // Нужны, только если автомобиль еще не зарегистрирован
	Customer        domain.CustomerIdentifier
	CustomerDetails domain.CustomerDetails // Нужны, только если клиент еще не зарегистрирован

	AdvanceFee          decimal.Decimal
	ServiceDescriptions []string // Повторы учитываются в длительности
}

// Response модель ответа с созданной записью
type Response struct {
	ID                   int64
	Date                 time.Time
	StartTime            types.TimeString
	EndTime              types.TimeString
	DurationMinutes      int
	Status               domain.AppointmentStatus
	VehicleID            int64
	CustomerID           *int64
	AdvanceFee           decimal.Decimal
	PaymentTransactionID string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
