package duration

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

var (
	// ErrNoServicesSelected возвращается, если не выбрано ни одной услуги
	ErrNoServicesSelected = fmt.Errorf("duration: no services selected: %w", domain.ErrValidation)

	// ErrTooManyServices возвращается, если выбрано больше услуг, чем допустимо
	ErrTooManyServices = fmt.Errorf("duration: too many services selected: %w", domain.ErrValidation)

	// ErrVehicleModelRequired возвращается, если не указаны марка или модель
	ErrVehicleModelRequired = fmt.Errorf("duration: vehicle make and model are required: %w", domain.ErrValidation)

	// ErrServiceNotFound возвращается, если услуги нет в прайсе для модели
	ErrServiceNotFound = fmt.Errorf("duration: service %w", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("duration: internal error")
)
