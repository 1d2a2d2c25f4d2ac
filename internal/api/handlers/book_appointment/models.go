package book_appointment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AutoService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-AutoService/pkg/ptr"
	"github.com/m04kA/SMC-AutoService/pkg/types"
)

// VehicleInput автомобиль в запросе: идентификатор и, для нового автомобиля, его данные
type VehicleInput struct {
	Kind  string `json:"kind"`  // PLATE или CHASSIS
	Value string `json:"value"` // госномер или номер шасси
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Year  int    `json:"year,omitempty"`
}

// CustomerInput клиент в запросе. Значение идентификатора берется из X-User-ID
type CustomerInput struct {
	Kind    string  `json:"kind"` // PHONE или NIC
	Name    string  `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	PhoneNo *string `json:"phoneNo,omitempty"`
}

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	Date                string          `json:"date"`      // "2026-11-02"
	StartTime           string          `json:"startTime"` // "10:00"
	Vehicle             VehicleInput    `json:"vehicle"`
	Customer            CustomerInput   `json:"customer"`
	AdvanceFee          decimal.Decimal `json:"advanceFee"`
	ServiceDescriptions []string        `json:"serviceDescriptions"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID                   int64           `json:"id"`
	Date                 string          `json:"date"`
	StartTime            string          `json:"startTime"`
	EndTime              string          `json:"endTime"`
	DurationMinutes      int             `json:"durationMinutes"`
	Status               string          `json:"status"`
	VehicleID            int64           `json:"vehicleId"`
	CustomerID           *int64          `json:"customerId,omitempty"`
	AdvanceFee           decimal.Decimal `json:"advanceFee"`
	PaymentTransactionID string          `json:"paymentTransactionId"`
	CreatedAt            string          `json:"createdAt"`
	UpdatedAt            string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *BookAppointmentRequest) ToUseCaseRequest(userID string) (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	var phoneNo *string
	if r.Customer.PhoneNo != nil {
		phoneNo = ptr.Ptr(strings.TrimSpace(*r.Customer.PhoneNo))
	}

	return &bookAppointment.Request{
		Date:      date,
		StartTime: startTime,
		Vehicle: domain.VehicleIdentifier{
			Kind:  domain.VehicleIdentifierKind(strings.ToUpper(strings.TrimSpace(r.Vehicle.Kind))),
			Value: strings.TrimSpace(r.Vehicle.Value),
		},
		VehicleDetails: domain.VehicleDetails{
			Make:  strings.TrimSpace(r.Vehicle.Make),
			Model: strings.TrimSpace(r.Vehicle.Model),
			Year:  r.Vehicle.Year,
		},
		Customer: domain.CustomerIdentifier{
			Kind:  domain.CustomerIdentifierKind(strings.ToUpper(strings.TrimSpace(r.Customer.Kind))),
			Value: userID,
		},
		CustomerDetails: domain.CustomerDetails{
			Name:    strings.TrimSpace(r.Customer.Name),
			Address: r.Customer.Address,
			PhoneNo: phoneNo,
		},
		AdvanceFee:          r.AdvanceFee,
		ServiceDescriptions: r.ServiceDescriptions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                   resp.ID,
		Date:                 resp.Date.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		DurationMinutes:      resp.DurationMinutes,
		Status:               string(resp.Status),
		VehicleID:            resp.VehicleID,
		CustomerID:           resp.CustomerID,
		AdvanceFee:           resp.AdvanceFee,
		PaymentTransactionID: resp.PaymentTransactionID,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
