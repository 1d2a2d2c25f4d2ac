package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AutoService/internal/domain"
	customerRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/customer"
	vehicleRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-AutoService/pkg/ptr"
)

// Service поиск и регистрация клиентов и автомобилей по явным идентификаторам
type Service struct {
	customerRepo CustomerRepository
	vehicleRepo  VehicleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(customerRepo CustomerRepository, vehicleRepo VehicleRepository, logger Logger) *Service {
	return &Service{
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		logger:       logger,
	}
}

// FindCustomer ищет клиента по значению, которое может быть NIC или телефоном
// Используется для заголовка X-User-ID
func (s *Service) FindCustomer(ctx context.Context, value string) (*domain.Customer, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrInvalidIdentifier
	}

	for _, kind := range []domain.CustomerIdentifierKind{domain.CustomerIdentifierNIC, domain.CustomerIdentifierPhone} {
		customer, err := s.getCustomer(ctx, domain.CustomerIdentifier{Kind: kind, Value: value})
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Error("FindCustomer: failed to get customer by %s: %v", kind, err)
			return nil, fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
		}
	}

	return nil, ErrCustomerNotFound
}

// ResolveCustomer ищет клиента по указанному полю и создает его, если не найден
func (s *Service) ResolveCustomer(ctx context.Context, id domain.CustomerIdentifier, details domain.CustomerDetails) (*domain.Customer, error) {
	id.Value = strings.TrimSpace(id.Value)
	if !id.Kind.IsValid() || id.Value == "" {
		return nil, fmt.Errorf("%w: customer %s=%q", ErrInvalidIdentifier, id.Kind, id.Value)
	}

	customer, err := s.getCustomer(ctx, id)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		s.logger.Error("ResolveCustomer: failed to get customer by %s: %v", id.Kind, err)
		return nil, fmt.Errorf("%w: failed to get customer: %w", ErrInternal, err)
	}

	name := strings.TrimSpace(details.Name)
	if name == "" || len(name) > domain.MaxCustomerNameLen {
		return nil, ErrCustomerDetailsRequired
	}

	newCustomer := &domain.Customer{
		Name:    name,
		Address: trimmedOrNil(details.Address),
		PhoneNo: trimmedOrNil(details.PhoneNo),
	}
	switch id.Kind {
	case domain.CustomerIdentifierPhone:
		newCustomer.PhoneNo = ptr.Ptr(id.Value)
	case domain.CustomerIdentifierNIC:
		newCustomer.NICNo = ptr.Ptr(id.Value)
	}

	created, err := s.customerRepo.Create(ctx, newCustomer)
	if err != nil {
		if errors.Is(err, customerRepo.ErrDuplicateCustomer) {
			s.logger.Warn("ResolveCustomer: duplicate customer for %s=%s: %v", id.Kind, id.Value, err)
			return nil, fmt.Errorf("%w: %v", ErrCustomerAlreadyExists, err)
		}
		s.logger.Error("ResolveCustomer: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %w", ErrInternal, err)
	}

	s.logger.Info("ResolveCustomer: registered customer id=%d by %s", created.ID, id.Kind)
	return created, nil
}

// ResolveVehicle ищет автомобиль по указанному полю и создает его, если не найден
// Новый автомобиль получает только тот идентификатор, по которому искали
func (s *Service) ResolveVehicle(ctx context.Context, id domain.VehicleIdentifier, details domain.VehicleDetails, ownerID *int64) (*domain.Vehicle, error) {
	id.Value = strings.TrimSpace(id.Value)
	if !id.Kind.IsValid() || id.Value == "" {
		return nil, fmt.Errorf("%w: vehicle %s=%q", ErrInvalidIdentifier, id.Kind, id.Value)
	}

	var (
		vehicle *domain.Vehicle
		err     error
	)
	switch id.Kind {
	case domain.VehicleIdentifierPlate:
		vehicle, err = s.vehicleRepo.GetByNumber(ctx, id.Value)
	case domain.VehicleIdentifierChassis:
		vehicle, err = s.vehicleRepo.GetByChassis(ctx, id.Value)
	}
	if err == nil {
		return vehicle, nil
	}
	if !errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
		s.logger.Error("ResolveVehicle: failed to get vehicle by %s: %v", id.Kind, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %w", ErrInternal, err)
	}

	details.Make = strings.TrimSpace(details.Make)
	details.Model = strings.TrimSpace(details.Model)
	if details.Make == "" || details.Model == "" ||
		details.Year < domain.MinVehicleYear || details.Year > domain.MaxVehicleYear {
		return nil, ErrVehicleDetailsRequired
	}

	newVehicle := &domain.Vehicle{
		Make:    details.Make,
		Model:   details.Model,
		Year:    details.Year,
		OwnerID: ownerID,
	}
	switch id.Kind {
	case domain.VehicleIdentifierPlate:
		newVehicle.VehicleNumber = ptr.Ptr(id.Value)
	case domain.VehicleIdentifierChassis:
		newVehicle.ChassisNo = ptr.Ptr(id.Value)
	}

	created, err := s.vehicleRepo.Create(ctx, newVehicle)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrDuplicateVehicle) {
			s.logger.Warn("ResolveVehicle: duplicate vehicle for %s=%s: %v", id.Kind, id.Value, err)
			return nil, fmt.Errorf("%w: %v", ErrVehicleAlreadyExists, err)
		}
		s.logger.Error("ResolveVehicle: failed to create vehicle: %v", err)
		return nil, fmt.Errorf("%w: failed to create vehicle: %w", ErrInternal, err)
	}

	s.logger.Info("ResolveVehicle: registered vehicle id=%d by %s", created.ID, id.Kind)
	return created, nil
}

func (s *Service) getCustomer(ctx context.Context, id domain.CustomerIdentifier) (*domain.Customer, error) {
	if id.Kind == domain.CustomerIdentifierPhone {
		return s.customerRepo.GetByPhone(ctx, id.Value)
	}
	return s.customerRepo.GetByNIC(ctx, id.Value)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
