package book_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.Vehicle.Kind.IsValid() || strings.TrimSpace(req.Vehicle.Value) == "" {
		return fmt.Errorf("%w: vehicle identifier with kind %s or %s is required",
			ErrInvalidInput, domain.VehicleIdentifierPlate, domain.VehicleIdentifierChassis)
	}

	if !req.Customer.Kind.IsValid() || strings.TrimSpace(req.Customer.Value) == "" {
		return fmt.Errorf("%w: customer identifier with kind %s or %s is required",
			ErrInvalidInput, domain.CustomerIdentifierPhone, domain.CustomerIdentifierNIC)
	}

	if req.AdvanceFee.IsNegative() {
		return fmt.Errorf("%w: advanceFee must not be negative", ErrInvalidInput)
	}

	if len(req.ServiceDescriptions) == 0 {
		return fmt.Errorf("%w: at least one service must be selected", ErrInvalidInput)
	}

	if len(req.ServiceDescriptions) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services can be selected", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	return nil
}

// validateNotInPast проверяет, что время начала записи еще не наступило
func validateNotInPast(req *Request, now time.Time) error {
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	reqDate := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, time.UTC)

	if reqDate.Before(nowDate) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}
	if reqDate.Equal(nowDate) && req.StartTime.Minutes() <= now.Hour()*60+now.Minute() {
		return fmt.Errorf("%w: startTime is in the past", ErrInvalidInput)
	}
	return nil
}
