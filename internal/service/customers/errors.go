package customers

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AutoService/internal/domain"
)

var (
	// ErrInvalidIdentifier возвращается при неизвестном типе или пустом значении идентификатора
	ErrInvalidIdentifier = fmt.Errorf("customers: invalid identifier: %w", domain.ErrValidation)

	// ErrCustomerDetailsRequired возвращается, если клиента нужно создать, а имя не указано
	ErrCustomerDetailsRequired = fmt.Errorf("customers: customer name is required to register a new customer: %w", domain.ErrValidation)

	// ErrVehicleDetailsRequired возвращается, если автомобиль нужно создать, а марка, модель или год не указаны
	ErrVehicleDetailsRequired = fmt.Errorf("customers: vehicle make, model and year are required to register a new vehicle: %w", domain.ErrValidation)

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = fmt.Errorf("customers: customer %w", domain.ErrNotFound)

	// ErrCustomerAlreadyExists возвращается при конфликте телефона или NIC с другим клиентом
	ErrCustomerAlreadyExists = fmt.Errorf("customers: customer %w", domain.ErrAlreadyExists)

	// ErrVehicleAlreadyExists возвращается при конфликте госномера или шасси с другим автомобилем
	ErrVehicleAlreadyExists = fmt.Errorf("customers: vehicle %w", domain.ErrAlreadyExists)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("customers: internal error")
)
