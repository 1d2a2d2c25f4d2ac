package get_available_slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.VehicleMake) == "" || strings.TrimSpace(req.VehicleModel) == "" {
		return fmt.Errorf("%w: vehicle make and model are required", ErrInvalidInput)
	}

	if len(req.ServiceDescriptions) == 0 {
		return fmt.Errorf("%w: at least one service must be selected", ErrInvalidInput)
	}

	if len(req.ServiceDescriptions) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services can be selected", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	return nil
}
