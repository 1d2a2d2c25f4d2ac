package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = errors.New("invalid appointment status")

// Request модели

// FilterRequest параметры поиска записей администратором, все поля опциональны
type FilterRequest struct {
	StartDate     *string // YYYY-MM-DD
	EndDate       *string // YYYY-MM-DD
	Status        *string
	VehicleNumber *string
	ChassisNumber *string
	CustomerName  *string
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToDomainFilter конвертирует request в domain фильтр
// Пустые строки считаются отсутствующими параметрами
func (r *FilterRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	var filter domain.AppointmentFilter

	var err error
	if filter.StartDate, err = parseDate("startDate", r.StartDate); err != nil {
		return filter, err
	}
	if filter.EndDate, err = parseDate("endDate", r.EndDate); err != nil {
		return filter, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return filter, errors.New("endDate must not be before startDate")
	}

	if status := trimmed(r.Status); status != nil {
		s, err := ToDomainStatus(*status)
		if err != nil {
			return filter, err
		}
		filter.Status = &s
	}

	for _, f := range []struct {
		name string
		src  *string
		dst  **string
	}{
		{"vehicleId", r.VehicleNumber, &filter.VehicleNumber},
		{"chassisNo", r.ChassisNumber, &filter.ChassisNumber},
		{"customerName", r.CustomerName, &filter.CustomerName},
	} {
		v := trimmed(f.src)
		if v != nil && len(*v) > domain.MaxFilterTextLen {
			return filter, fmt.Errorf("%s must be at most %d characters", f.name, domain.MaxFilterTextLen)
		}
		*f.dst = v
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`      // "2026-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "10:45"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	VehicleID     int64   `json:"vehicleId"`
	VehicleNumber *string `json:"vehicleNumber,omitempty"`
	ChassisNo     *string `json:"chassisNo,omitempty"`
	CustomerID    *int64  `json:"customerId,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`

	AdvanceFee           decimal.Decimal `json:"advanceFee"`
	PaymentTransactionID string          `json:"paymentTransactionId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                   a.ID,
		Date:                 a.Date.Format(domain.DateFormat),
		StartTime:            a.StartTime.String(),
		EndTime:              a.EndTime.String(),
		DurationMinutes:      a.DurationMinutes(),
		Status:               string(a.Status),
		VehicleID:            a.VehicleID,
		VehicleNumber:        a.VehicleNumber,
		ChassisNo:            a.ChassisNo,
		CustomerID:           a.CustomerID,
		CustomerName:         a.CustomerName,
		AdvanceFee:           a.AdvanceFee,
		PaymentTransactionID: a.PaymentTransactionID,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}
	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s, nil
}

func parseDate(name string, value *string) (*time.Time, error) {
	v := trimmed(value)
	if v == nil {
		return nil, nil
	}
	d, err := time.Parse(domain.DateFormat, *v)
	if err != nil {
		return nil, fmt.Errorf("%s must be in format %s", name, domain.DateFormat)
	}
	return &d, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
