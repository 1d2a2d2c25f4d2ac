package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusUpcoming  AppointmentStatus = "UPCOMING"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid returns true if the status belongs to the closed set of statuses
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are allowed
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo допустимы только UPCOMING -> COMPLETED и UPCOMING -> CANCELLED
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return s == StatusUpcoming && (next == StatusCompleted || next == StatusCancelled)
}

// Appointment represents a booked service visit
type Appointment struct {
	ID         int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     AppointmentStatus
	VehicleID  int64
	CustomerID *int64

	AdvanceFee           decimal.Decimal
	PaymentTransactionID string

	// Данные связанных записей, заполняются на чтении (JOIN)
	VehicleNumber *string
	ChassisNo     *string
	CustomerName  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the appointment no longer occupies the calendar
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// Interval returns the occupied [start, end) range in minutes from midnight
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.StartTime.Minutes(), End: a.EndTime.Minutes()}
}

// DurationMinutes returns end - start
func (a *Appointment) DurationMinutes() int {
	return a.EndTime.Minutes() - a.StartTime.Minutes()
}

// AppointmentFilter фильтр для поиска записей
// Все заданные поля объединяются через AND, nil означает "без ограничения"
type AppointmentFilter struct {
	StartDate     *time.Time         // Начало периода (включительно)
	EndDate       *time.Time         // Конец периода (включительно)
	Status        *AppointmentStatus // Статус
	VehicleNumber *string            // Подстрока госномера, без учета регистра
	ChassisNumber *string            // Подстрока номера шасси, без учета регистра
	CustomerName  *string            // Подстрока имени клиента, без учета регистра
	CustomerID    *int64             // Записи клиента или на его автомобили
}
